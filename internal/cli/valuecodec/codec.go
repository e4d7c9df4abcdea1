// Package valuecodec provides display codecs for stored values.
//
// Values written through other SDKs are often base64-encoded or
// compressed before storage. A codec lets the CLI decode such values for
// display (and encode them symmetrically when writing).
package valuecodec

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/golang/snappy"
)

// Codec transforms raw value bytes for storage or display.
type Codec interface {
	// Name returns the codec name as used on the command line.
	Name() string

	// Encode transforms plaintext into the stored representation.
	Encode(data []byte) ([]byte, error)

	// Decode transforms the stored representation back into plaintext.
	Decode(data []byte) ([]byte, error)
}

// Lookup returns the codec with the given name.
func Lookup(name string) (Codec, error) {
	switch name {
	case "base64":
		return base64Codec{}, nil
	case "gzip":
		return gzipCodec{}, nil
	case "snappy":
		return snappyCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q (available: base64, gzip, snappy)", name)
	}
}

// Names returns the available codec names.
func Names() []string {
	return []string{"base64", "gzip", "snappy"}
}

type base64Codec struct{}

func (base64Codec) Name() string { return "base64" }

func (base64Codec) Encode(data []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(out, data)
	return out, nil
}

func (base64Codec) Decode(data []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(out, data)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

type gzipCodec struct{}

func (gzipCodec) Name() string { return "gzip" }

func (gzipCodec) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gzipCodec) Decode(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

type snappyCodec struct{}

func (snappyCodec) Name() string { return "snappy" }

func (snappyCodec) Encode(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (snappyCodec) Decode(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}
