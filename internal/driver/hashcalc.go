package driver

import (
	"crypto/sha256"

	"diagsynth/internal/report"
	"diagsynth/internal/version"
)

// Digest identifies one cached rendering.
type Digest [32]byte

// cacheKey: H(schema || version || mode || source override || raw document).
// Documents are self-describing, so the raw bytes stand for every input the
// rendering depends on.
func cacheKey(raw []byte, mode report.Mode, sourceOverride string) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion), 0})
	_, _ = h.Write([]byte(version.Version))
	_, _ = h.Write([]byte{0, byte(mode), 0})
	_, _ = h.Write([]byte(sourceOverride))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(raw)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
