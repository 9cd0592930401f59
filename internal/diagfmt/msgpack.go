package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"diagsynth/internal/diag"
	"diagsynth/internal/source"
)

// Msgpack writes the same document as JSON in msgpack form, keyed by the json field names.
func Msgpack(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(output)
}

// ReadMsgpack decodes a document written by Msgpack.
func ReadMsgpack(r io.Reader) (DiagnosticsOutput, error) {
	var out DiagnosticsOutput
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	err := dec.Decode(&out)
	return out, err
}
