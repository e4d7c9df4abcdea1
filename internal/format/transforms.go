package format

import (
	"strconv"
	"strings"

	"github.com/upstash/redis-go/internal/protocol"
)

func toBool(name string, raw any) (any, error) {
	n, ok := raw.(int64)
	if !ok {
		return nil, contractErr(name, "boolean reply has type %T, want integer", raw)
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return nil, contractErr(name, "boolean reply out of range: %d", n)
}

func toBoolList(name string, raw any) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, contractErr(name, "reply has type %T, want array", raw)
	}
	out := make([]bool, len(items))
	for i, el := range items {
		b, err := toBool(name, el)
		if err != nil {
			return nil, err
		}
		out[i] = b.(bool)
	}
	return out, nil
}

func toOptionalBoolList(name string, raw any) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, contractErr(name, "reply has type %T, want array", raw)
	}
	out := make([]*bool, len(items))
	for i, el := range items {
		if el == nil {
			continue
		}
		b, err := toBool(name, el)
		if err != nil {
			return nil, err
		}
		v := b.(bool)
		out[i] = &v
	}
	return out, nil
}

// toPairMap folds a flat [field, value, field, value, ...] list into a map.
func toPairMap(name string, raw any) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, contractErr(name, "reply has type %T, want array", raw)
	}
	if len(items)%2 != 0 {
		return nil, contractErr(name, "pair list has odd length %d", len(items))
	}
	out := make(map[string]any, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		key, ok := items[i].(string)
		if !ok {
			return nil, contractErr(name, "pair key has type %T, want string", items[i])
		}
		out[key] = items[i+1]
	}
	return out, nil
}

// toMemberScores folds a flat [member, score, member, score, ...] list into
// ordered pairs. Order is preserved: it carries the ranking.
func toMemberScores(name string, raw any) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, contractErr(name, "reply has type %T, want array", raw)
	}
	if len(items)%2 != 0 {
		return nil, contractErr(name, "member-score list has odd length %d", len(items))
	}
	out := make([]MemberScore, 0, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		member, ok := items[i].(string)
		if !ok {
			return nil, contractErr(name, "member has type %T, want string", items[i])
		}
		score, err := asFloat(name, items[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, MemberScore{Member: member, Score: score})
	}
	return out, nil
}

// scanPage splits the two-element [cursor, items] scan reply.
func scanPage(name string, raw any) (uint64, []any, error) {
	page, ok := raw.([]any)
	if !ok {
		return 0, nil, contractErr(name, "reply has type %T, want array", raw)
	}
	if len(page) != 2 {
		return 0, nil, contractErr(name, "scan reply has %d elements, want 2", len(page))
	}
	cursorStr, ok := page[0].(string)
	if !ok {
		return 0, nil, contractErr(name, "cursor has type %T, want string", page[0])
	}
	cursor, err := strconv.ParseUint(cursorStr, 10, 64)
	if err != nil {
		return 0, nil, contractErr(name, "cursor %q is not a number", cursorStr)
	}
	items, ok := page[1].([]any)
	if !ok {
		return 0, nil, contractErr(name, "scan items have type %T, want array", page[1])
	}
	return cursor, items, nil
}

func toScanResult(name string, raw any) (any, error) {
	cursor, items, err := scanPage(name, raw)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(items))
	for i, el := range items {
		s, ok := el.(string)
		if !ok {
			return nil, contractErr(name, "scan item has type %T, want string", el)
		}
		keys[i] = s
	}
	return ScanResult{Cursor: cursor, Keys: keys}, nil
}

func toHScanResult(name string, raw any) (any, error) {
	cursor, items, err := scanPage(name, raw)
	if err != nil {
		return nil, err
	}
	pairs, err := toPairMap(name, items)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(pairs.(map[string]any)))
	for k, v := range pairs.(map[string]any) {
		s, ok := v.(string)
		if !ok {
			return nil, contractErr(name, "field value has type %T, want string", v)
		}
		fields[k] = s
	}
	return HScanResult{Cursor: cursor, Fields: fields}, nil
}

func toZScanResult(name string, raw any) (any, error) {
	cursor, items, err := scanPage(name, raw)
	if err != nil {
		return nil, err
	}
	members, err := toMemberScores(name, items)
	if err != nil {
		return nil, err
	}
	return ZScanResult{Cursor: cursor, Members: members.([]MemberScore)}, nil
}

func toFloat(name string, raw any) (any, error) {
	return asFloat(name, raw)
}

func toOptionalFloat(name string, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return asFloat(name, raw)
}

func toOptionalFloatList(name string, raw any) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, contractErr(name, "reply has type %T, want array", raw)
	}
	out := make([]*float64, len(items))
	for i, el := range items {
		if el == nil {
			continue
		}
		f, err := asFloat(name, el)
		if err != nil {
			return nil, err
		}
		out[i] = &f
	}
	return out, nil
}

func toTimeResult(name string, raw any) (any, error) {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return nil, contractErr(name, "clock reply is not a two-element array")
	}
	sec, err := asInt(name, pair[0])
	if err != nil {
		return nil, err
	}
	usec, err := asInt(name, pair[1])
	if err != nil {
		return nil, err
	}
	return TimeResult{Seconds: sec, Microseconds: usec}, nil
}

func toGeoPositions(name string, raw any) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, contractErr(name, "reply has type %T, want array", raw)
	}
	out := make([]*GeoPosition, len(items))
	for i, el := range items {
		if el == nil {
			continue
		}
		pos, err := asGeoPosition(name, el)
		if err != nil {
			return nil, err
		}
		out[i] = pos
	}
	return out, nil
}

func asGeoPosition(name string, el any) (*GeoPosition, error) {
	pair, ok := el.([]any)
	if !ok || len(pair) != 2 {
		return nil, contractErr(name, "position is not a two-element array")
	}
	lon, err := asFloat(name, pair[0])
	if err != nil {
		return nil, err
	}
	lat, err := asFloat(name, pair[1])
	if err != nil {
		return nil, err
	}
	return &GeoPosition{Longitude: lon, Latitude: lat}, nil
}

// toGeoSearch reshapes radius and search replies. Without any WITH* flag
// every element is a bare member name; with flags each element is an array
// carrying, in order, the distance, the hash, and the coordinates for the
// flags that were sent.
func toGeoSearch(name string, raw any, withDist, withHash, withCoord bool) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, contractErr(name, "reply has type %T, want array", raw)
	}
	out := make([]GeoSearchResult, len(items))
	for i, el := range items {
		switch v := el.(type) {
		case string:
			out[i] = GeoSearchResult{Member: v}
		case []any:
			res, err := parseGeoSearchItem(name, v, withDist, withHash, withCoord)
			if err != nil {
				return nil, err
			}
			out[i] = res
		default:
			return nil, contractErr(name, "search item has type %T", el)
		}
	}
	return out, nil
}

func parseGeoSearchItem(name string, item []any, withDist, withHash, withCoord bool) (GeoSearchResult, error) {
	if len(item) == 0 {
		return GeoSearchResult{}, contractErr(name, "empty search item")
	}
	member, ok := item[0].(string)
	if !ok {
		return GeoSearchResult{}, contractErr(name, "member has type %T, want string", item[0])
	}
	res := GeoSearchResult{Member: member}

	idx := 1
	next := func() (any, bool) {
		if idx >= len(item) {
			return nil, false
		}
		v := item[idx]
		idx++
		return v, true
	}

	if withDist {
		v, ok := next()
		if !ok {
			return res, contractErr(name, "search item is missing the distance")
		}
		d, err := asFloat(name, v)
		if err != nil {
			return res, err
		}
		res.Distance = &d
	}
	if withHash {
		v, ok := next()
		if !ok {
			return res, contractErr(name, "search item is missing the hash")
		}
		h, err := asInt(name, v)
		if err != nil {
			return res, err
		}
		res.Hash = &h
	}
	if withCoord {
		v, ok := next()
		if !ok {
			return res, contractErr(name, "search item is missing the coordinates")
		}
		pos, err := asGeoPosition(name, v)
		if err != nil {
			return res, err
		}
		res.Longitude = &pos.Longitude
		res.Latitude = &pos.Latitude
	}
	return res, nil
}

func toJSONDocument(name string, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	doc, ok := raw.(string)
	if !ok {
		return nil, contractErr(name, "document has type %T, want string", raw)
	}
	parsed, err := protocol.DecodeJSON(strings.NewReader(doc))
	if err != nil {
		return nil, contractErr(name, "document is not valid JSON: %v", err)
	}
	return parsed, nil
}

func toJSONList(name string, raw any) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, contractErr(name, "reply has type %T, want array", raw)
	}
	out := make([]any, len(items))
	for i, el := range items {
		doc, err := toJSONDocument(name, el)
		if err != nil {
			return nil, err
		}
		out[i] = doc
	}
	return out, nil
}

// asFloat parses score strings, accepting inf and -inf like the server
// emits them. Numeric replies pass through.
func asFloat(name string, v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, contractErr(name, "value %q is not a number", t)
		}
		return f, nil
	}
	return 0, contractErr(name, "numeric value has type %T", v)
}

func asInt(name string, v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, contractErr(name, "value %q is not an integer", t)
		}
		return n, nil
	}
	return 0, contractErr(name, "integer value has type %T", v)
}
