package protocol

import (
	"encoding/base64"
	"fmt"
)

// Decode reverses the base64 response encoding. The walk mirrors the result
// grammar: strings are base64-decoded, integers and nil pass through, lists
// recurse to arbitrary depth. The literal "OK" is the status reply of
// write commands and is never encoded by the server, so it is kept verbatim.
func Decode(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int64:
		return v, nil
	case string:
		if v == "OK" {
			return v, nil
		}
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, &DecodeError{Message: "invalid base64 payload", Cause: err}
		}
		return string(b), nil
	case []any:
		out := make([]any, len(v))
		for i, el := range v {
			dec, err := Decode(el)
			if err != nil {
				return nil, err
			}
			out[i] = dec
		}
		return out, nil
	default:
		return nil, &DecodeError{Message: fmt.Sprintf("unsupported result element type %T", raw)}
	}
}
