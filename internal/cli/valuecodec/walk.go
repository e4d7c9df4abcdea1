package valuecodec

// DecodeLeaves applies codec.Decode to every string leaf of a decoded
// command result, returning a transformed copy. Leaves that fail to
// decode are kept as-is: results routinely mix encoded values with plain
// keys and field names.
func DecodeLeaves(codec Codec, result any) any {
	switch v := result.(type) {
	case string:
		decoded, err := codec.Decode([]byte(v))
		if err != nil {
			return v
		}
		return string(decoded)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = DecodeLeaves(codec, item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = DecodeLeaves(codec, item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, item := range v {
			decoded, err := codec.Decode([]byte(item))
			if err != nil {
				out[k] = item
				continue
			}
			out[k] = string(decoded)
		}
		return out
	default:
		return result
	}
}
