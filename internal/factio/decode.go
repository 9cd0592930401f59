package factio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Encoding of a fact document.
type Encoding uint8

const (
	EncodingYAML Encoding = iota // YAML, or JSON which is read by the same decoder
	EncodingMsgpack
)

// EncodingFor picks the encoding from a file name.
func EncodingFor(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		return EncodingMsgpack
	default:
		return EncodingYAML
	}
}

// IsFactFile reports whether a directory walk should pick up path.
func IsFactFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".mp", ".msgpack":
		return strings.Contains(filepath.Base(path), ".facts.")
	default:
		return false
	}
}

// DecodeYAML reads a YAML or JSON document. Unknown fields are errors.
func DecodeYAML(r io.Reader) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, err
	}
	return &doc, nil
}

// DecodeMsgpack reads a msgpack document keyed by the YAML field names.
func DecodeMsgpack(r io.Reader) (*Document, error) {
	var doc Document
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("yaml")
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeMsgpack writes doc in the form DecodeMsgpack reads.
func EncodeMsgpack(w io.Writer, doc *Document) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("yaml")
	enc.SetOmitEmpty(true)
	return enc.Encode(doc)
}

// Decode reads data in the given encoding.
func Decode(data []byte, enc Encoding) (*Document, error) {
	if enc == EncodingMsgpack {
		return DecodeMsgpack(bytes.NewReader(data))
	}
	return DecodeYAML(bytes.NewReader(data))
}

// ReadFile loads the document at path and returns its raw bytes alongside.
func ReadFile(path string) (*Document, []byte, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := Decode(data, EncodingFor(path))
	if err != nil {
		return nil, nil, fmt.Errorf("facts: parse %s: %w", path, err)
	}
	return doc, data, nil
}
