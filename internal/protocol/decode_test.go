package protocol

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want any
	}{
		{"encoded string", "dGVzdA==", "test"},
		{"status reply kept verbatim", "OK", "OK"},
		{"integer", int64(1), int64(1)},
		{"nil", nil, nil},
		{"empty list", []any{}, []any{}},
		{
			"flat list",
			[]any{"YWJjZA==", int64(1), "MQ==", nil},
			[]any{"abcd", int64(1), "1", nil},
		},
		{
			"nested list",
			[]any{"YQ==", []any{"YWJjZA==", int64(1)}},
			[]any{"a", []any{"abcd", int64(1)}},
		},
		{
			"deeply nested list",
			[]any{nil, []any{"MQ==", []any{int64(1), "MQ=="}}},
			[]any{nil, []any{"1", []any{int64(1), "1"}}},
		},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw)
			if err != nil {
				t.Fatalf("Decode(%v) failed: %v", tt.raw, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"invalid base64", "not base64!"},
		{"map leaf", map[string]any{"a": int64(1)}},
		{"float leaf", 3.14},
		{"bool leaf", true},
		{"invalid base64 nested", []any{"dGVzdA==", []any{"???"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			if err == nil {
				t.Fatalf("Decode(%v) expected error, got nil", tt.raw)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Errorf("error = %T, want *DecodeError", err)
			}
		})
	}
}

func TestDecode_BinaryPayload(t *testing.T) {
	// Base64 carries arbitrary bytes; the decoded string must keep them.
	got, err := Decode("AAEC/w==")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := string([]byte{0x00, 0x01, 0x02, 0xff})
	if got != want {
		t.Errorf("Decode = %q, want %q", got, want)
	}
}

func BenchmarkDecode(b *testing.B) {
	raw := []any{
		"dXNlcjoxMDAw", int64(42),
		[]any{"YWxpY2U=", "Ym9i", "Y2Fyb2w="},
		nil, "OTguNQ==",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(raw); err != nil {
			b.Fatal(err)
		}
	}
}
