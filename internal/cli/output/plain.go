package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// PlainFormatter renders results in a redis-cli inspired style: numbered
// array entries, typed scalars, nested structures indented.
type PlainFormatter struct {
	integer *color.Color
	str     *color.Color
	nilc    *color.Color
	boolc   *color.Color
}

// NewPlainFormatter creates a plain formatter. Colors are disabled when
// noColor is set (and by fatih/color itself when not writing to a tty).
func NewPlainFormatter(noColor bool) *PlainFormatter {
	f := &PlainFormatter{
		integer: color.New(color.FgCyan),
		str:     color.New(color.FgGreen),
		nilc:    color.New(color.Faint),
		boolc:   color.New(color.FgYellow),
	}
	if noColor {
		f.integer.DisableColor()
		f.str.DisableColor()
		f.nilc.DisableColor()
		f.boolc.DisableColor()
	}
	return f
}

// Format writes data in plain form.
func (f *PlainFormatter) Format(w io.Writer, data any) error {
	return f.write(w, data, "")
}

func (f *PlainFormatter) write(w io.Writer, data any, indent string) error {
	switch v := data.(type) {
	case nil:
		_, err := fmt.Fprintf(w, "%s%s\n", indent, f.nilc.Sprint("(nil)"))
		return err
	case string:
		_, err := fmt.Fprintf(w, "%s%s\n", indent, f.str.Sprintf("%q", v))
		return err
	case int64:
		_, err := fmt.Fprintf(w, "%s%s\n", indent, f.integer.Sprintf("(integer) %d", v))
		return err
	case int:
		return f.write(w, int64(v), indent)
	case uint64:
		_, err := fmt.Fprintf(w, "%s%s\n", indent, f.integer.Sprintf("(integer) %d", v))
		return err
	case float64:
		_, err := fmt.Fprintf(w, "%s%s\n", indent, f.integer.Sprintf("(double) %g", v))
		return err
	case bool:
		_, err := fmt.Fprintf(w, "%s%s\n", indent, f.boolc.Sprintf("%t", v))
		return err
	case []any:
		return f.writeArray(w, v, indent)
	case []string:
		arr := make([]any, len(v))
		for i, s := range v {
			arr[i] = s
		}
		return f.writeArray(w, arr, indent)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return f.writeMap(w, m, indent)
	case map[string]any:
		return f.writeMap(w, v, indent)
	default:
		_, err := fmt.Fprintf(w, "%s%v\n", indent, v)
		return err
	}
}

func (f *PlainFormatter) writeArray(w io.Writer, arr []any, indent string) error {
	if len(arr) == 0 {
		_, err := fmt.Fprintf(w, "%s%s\n", indent, f.nilc.Sprint("(empty array)"))
		return err
	}

	// Width of the largest index keeps the entries aligned.
	width := len(fmt.Sprint(len(arr)))
	for i, item := range arr {
		prefix := fmt.Sprintf("%s%*d) ", indent, width, i+1)
		switch item.(type) {
		case []any, map[string]any, map[string]string:
			if _, err := fmt.Fprintln(w, strings.TrimRight(prefix, " ")); err != nil {
				return err
			}
			if err := f.write(w, item, indent+strings.Repeat(" ", width+2)); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprint(w, prefix); err != nil {
				return err
			}
			if err := f.write(w, item, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *PlainFormatter) writeMap(w io.Writer, m map[string]any, indent string) error {
	if len(m) == 0 {
		_, err := fmt.Fprintf(w, "%s%s\n", indent, f.nilc.Sprint("(empty hash)"))
		return err
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s%s: ", indent, k); err != nil {
			return err
		}
		if err := f.write(w, m[k], ""); err != nil {
			return err
		}
	}
	return nil
}
