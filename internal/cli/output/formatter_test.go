package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"plain", FormatPlain, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"table", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON, false).(*JSONFormatter); !ok {
		t.Error("NewFormatter(json) should return a JSONFormatter")
	}
	if _, ok := NewFormatter(FormatYAML, false).(*YAMLFormatter); !ok {
		t.Error("NewFormatter(yaml) should return a YAMLFormatter")
	}
	if _, ok := NewFormatter(FormatPlain, true).(*PlainFormatter); !ok {
		t.Error("NewFormatter(plain) should return a PlainFormatter")
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}

	data := map[string]any{"key": "value", "count": int64(3)}
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["key"] != "value" {
		t.Errorf("key = %v, want value", got["key"])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("JSON output should be indented")
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}

	data := map[string]any{"cursor": uint64(0), "keys": []string{"a", "b"}}
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if _, ok := got["keys"]; !ok {
		t.Error("YAML output missing keys field")
	}
}

func TestPlainFormatter(t *testing.T) {
	tests := []struct {
		name string
		data any
		want []string // substrings that must appear, in order
	}{
		{"nil", nil, []string{"(nil)"}},
		{"string", "hello", []string{`"hello"`}},
		{"integer", int64(42), []string{"(integer) 42"}},
		{"double", float64(1.5), []string{"(double) 1.5"}},
		{"bool", true, []string{"true"}},
		{"empty array", []any{}, []string{"(empty array)"}},
		{
			"flat array",
			[]any{"a", int64(2), nil},
			[]string{`1) "a"`, "2) (integer) 2", "3) (nil)"},
		},
		{
			"nested array",
			[]any{"a", []any{"b", "c"}},
			[]string{`1) "a"`, "2)", `1) "b"`, `2) "c"`},
		},
		{
			"string map sorted",
			map[string]string{"b": "2", "a": "1"},
			[]string{`a: "1"`, `b: "2"`},
		},
		{
			"wide array aligned",
			func() any {
				arr := make([]any, 10)
				for i := range arr {
					arr[i] = int64(i)
				}
				return arr
			}(),
			[]string{" 1) (integer) 0", "10) (integer) 9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := NewPlainFormatter(true)
			if err := f.Format(&buf, tt.data); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			out := buf.String()
			pos := 0
			for _, want := range tt.want {
				idx := strings.Index(out[pos:], want)
				if idx < 0 {
					t.Fatalf("output missing %q (after offset %d):\n%s", want, pos, out)
				}
				pos += idx + len(want)
			}
		})
	}
}
