package valuecodec

import (
	"bytes"
	"reflect"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		c, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", name, err)
			continue
		}
		if c.Name() != name {
			t.Errorf("Name() = %q, want %q", c.Name(), name)
		}
	}

	if _, err := Lookup("rot13"); err == nil {
		t.Error("Lookup(rot13) should fail")
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("hello world"),
		[]byte(""),
		[]byte("snowman ☃"),
		bytes.Repeat([]byte("abc"), 1000),
		{0x00, 0xFF, 0x7F, 0x80},
	}

	for _, name := range Names() {
		c, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}

		for _, payload := range payloads {
			encoded, err := c.Encode(payload)
			if err != nil {
				t.Fatalf("%s: Encode() error = %v", name, err)
			}
			decoded, err := c.Decode(encoded)
			if err != nil {
				t.Fatalf("%s: Decode() error = %v", name, err)
			}
			if !bytes.Equal(decoded, payload) {
				t.Errorf("%s: round trip = %q, want %q", name, decoded, payload)
			}
		}
	}
}

func TestCodec_DecodeInvalid(t *testing.T) {
	tests := []struct {
		codec string
		data  []byte
	}{
		{"base64", []byte("!!!not base64!!!")},
		{"gzip", []byte("plain text")},
		{"snappy", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			c, err := Lookup(tt.codec)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if _, err := c.Decode(tt.data); err == nil {
				t.Error("Decode() should fail on invalid input")
			}
		})
	}
}

func TestDecodeLeaves(t *testing.T) {
	c, err := Lookup("base64")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	tests := []struct {
		name   string
		result any
		want   any
	}{
		{
			name:   "string leaf",
			result: "aGVsbG8",
			// StdEncoding requires padding; undecodable leaves pass through.
			want: "aGVsbG8",
		},
		{
			name:   "padded string leaf",
			result: "aGVsbG8=",
			want:   "hello",
		},
		{
			name:   "nested array",
			result: []any{"aGVsbG8=", []any{"d29ybGQ="}, int64(3)},
			want:   []any{"hello", []any{"world"}, int64(3)},
		},
		{
			name:   "string map",
			result: map[string]string{"field": "aGVsbG8="},
			want:   map[string]string{"field": "hello"},
		},
		{
			name:   "non-string leaf untouched",
			result: int64(42),
			want:   int64(42),
		},
		{
			name:   "nil untouched",
			result: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeLeaves(c, tt.result)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeLeaves() = %v, want %v", got, tt.want)
			}
		})
	}
}
