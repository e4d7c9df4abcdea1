package redis

import (
	"fmt"
	"strconv"

	"github.com/upstash/redis-go/internal/format"
)

// Reply coercion helpers. The formatting layer guarantees reply shapes per
// command; these narrow the generic result to the method's return type and
// turn an absent value into ErrNil.

func replyTypeErr(res any, want string) error {
	return fmt.Errorf("redis: unexpected reply type %T, want %s", res, want)
}

func asString(res any) (string, error) {
	if res == nil {
		return "", ErrNil
	}
	s, ok := res.(string)
	if !ok {
		return "", replyTypeErr(res, "string")
	}
	return s, nil
}

func asInt(res any) (int64, error) {
	if res == nil {
		return 0, ErrNil
	}
	n, ok := res.(int64)
	if !ok {
		return 0, replyTypeErr(res, "integer")
	}
	return n, nil
}

func asFloat(res any) (float64, error) {
	if res == nil {
		return 0, ErrNil
	}
	f, ok := res.(float64)
	if !ok {
		return 0, replyTypeErr(res, "float")
	}
	return f, nil
}

func asBool(res any) (bool, error) {
	b, ok := res.(bool)
	if !ok {
		return false, replyTypeErr(res, "bool")
	}
	return b, nil
}

// asStatus consumes a plain OK status reply.
func asStatus(res any) error {
	s, ok := res.(string)
	if !ok || s != "OK" {
		return replyTypeErr(res, `"OK"`)
	}
	return nil
}

func asAnySlice(res any) ([]any, error) {
	if res == nil {
		return nil, nil
	}
	items, ok := res.([]any)
	if !ok {
		return nil, replyTypeErr(res, "array")
	}
	return items, nil
}

func asStringSlice(res any) ([]string, error) {
	items, err := asAnySlice(res)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, el := range items {
		s, ok := el.(string)
		if !ok {
			return nil, replyTypeErr(el, "string")
		}
		out[i] = s
	}
	return out, nil
}

// asOptionalStringSlice keeps absent elements as nil pointers.
func asOptionalStringSlice(res any) ([]*string, error) {
	items, err := asAnySlice(res)
	if err != nil {
		return nil, err
	}
	out := make([]*string, len(items))
	for i, el := range items {
		if el == nil {
			continue
		}
		s, ok := el.(string)
		if !ok {
			return nil, replyTypeErr(el, "string")
		}
		out[i] = &s
	}
	return out, nil
}

func asOptionalIntSlice(res any) ([]*int64, error) {
	items, err := asAnySlice(res)
	if err != nil {
		return nil, err
	}
	out := make([]*int64, len(items))
	for i, el := range items {
		if el == nil {
			continue
		}
		n, ok := el.(int64)
		if !ok {
			return nil, replyTypeErr(el, "integer")
		}
		out[i] = &n
	}
	return out, nil
}

func asBoolSlice(res any) ([]bool, error) {
	items, ok := res.([]bool)
	if !ok {
		return nil, replyTypeErr(res, "bool array")
	}
	return items, nil
}

func asStringMap(res any) (map[string]string, error) {
	pairs, ok := res.(map[string]any)
	if !ok {
		return nil, replyTypeErr(res, "map")
	}
	out := make(map[string]string, len(pairs))
	for k, v := range pairs {
		s, ok := v.(string)
		if !ok {
			return nil, replyTypeErr(v, "string")
		}
		out[k] = s
	}
	return out, nil
}

func asIntMap(res any) (map[string]int64, error) {
	pairs, ok := res.(map[string]any)
	if !ok {
		return nil, replyTypeErr(res, "map")
	}
	out := make(map[string]int64, len(pairs))
	for k, v := range pairs {
		n, ok := v.(int64)
		if !ok {
			return nil, replyTypeErr(v, "integer")
		}
		out[k] = n
	}
	return out, nil
}

func asMemberScores(res any) ([]MemberScore, error) {
	members, ok := res.([]MemberScore)
	if !ok {
		return nil, replyTypeErr(res, "member-score pairs")
	}
	return members, nil
}

func asOptionalFloatSlice(res any) ([]*float64, error) {
	scores, ok := res.([]*float64)
	if !ok {
		return nil, replyTypeErr(res, "optional float array")
	}
	return scores, nil
}

func asGeoSearchResults(res any) ([]GeoSearchResult, error) {
	results, ok := res.([]format.GeoSearchResult)
	if !ok {
		return nil, replyTypeErr(res, "geo search results")
	}
	return results, nil
}

// xMessage converts one [id, [field, value, ...]] stream entry.
func xMessage(el any) (XMessage, error) {
	entry, ok := el.([]any)
	if !ok || len(entry) != 2 {
		return XMessage{}, replyTypeErr(el, "stream entry")
	}
	id, ok := entry[0].(string)
	if !ok {
		return XMessage{}, replyTypeErr(entry[0], "string")
	}
	fields, ok := entry[1].([]any)
	if !ok {
		return XMessage{}, replyTypeErr(entry[1], "field-value array")
	}
	if len(fields)%2 != 0 {
		return XMessage{}, fmt.Errorf("redis: stream entry %s has odd field list", id)
	}
	values := make(map[string]string, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		k, ok := fields[i].(string)
		if !ok {
			return XMessage{}, replyTypeErr(fields[i], "string")
		}
		v, ok := fields[i+1].(string)
		if !ok {
			return XMessage{}, replyTypeErr(fields[i+1], "string")
		}
		values[k] = v
	}
	return XMessage{ID: id, Values: values}, nil
}

func asXMessages(res any) ([]XMessage, error) {
	items, err := asAnySlice(res)
	if err != nil {
		return nil, err
	}
	out := make([]XMessage, len(items))
	for i, el := range items {
		msg, err := xMessage(el)
		if err != nil {
			return nil, err
		}
		out[i] = msg
	}
	return out, nil
}

// asXPendingSummary parses the [count, lower, higher, [[consumer, n],...]]
// summary reply of XPENDING. The bound IDs and the consumer list are nil
// when nothing is pending.
func asXPendingSummary(res any) (XPendingSummary, error) {
	parts, ok := res.([]any)
	if !ok || len(parts) != 4 {
		return XPendingSummary{}, replyTypeErr(res, "pending summary")
	}
	count, ok := parts[0].(int64)
	if !ok {
		return XPendingSummary{}, replyTypeErr(parts[0], "integer")
	}
	out := XPendingSummary{Count: count}
	if s, ok := parts[1].(string); ok {
		out.Lower = s
	}
	if s, ok := parts[2].(string); ok {
		out.Higher = s
	}
	if parts[3] == nil {
		return out, nil
	}
	consumers, ok := parts[3].([]any)
	if !ok {
		return XPendingSummary{}, replyTypeErr(parts[3], "consumer array")
	}
	out.Consumers = make(map[string]int64, len(consumers))
	for _, el := range consumers {
		pair, ok := el.([]any)
		if !ok || len(pair) != 2 {
			return XPendingSummary{}, replyTypeErr(el, "consumer entry")
		}
		name, ok := pair[0].(string)
		if !ok {
			return XPendingSummary{}, replyTypeErr(pair[0], "string")
		}
		n, err := pendingCount(pair[1])
		if err != nil {
			return XPendingSummary{}, err
		}
		out.Consumers[name] = n
	}
	return out, nil
}

// pendingCount tolerates the per-consumer count arriving as a decimal
// string, which is how the server reports it.
func pendingCount(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, replyTypeErr(v, "integer")
		}
		return n, nil
	}
	return 0, replyTypeErr(v, "integer")
}

func asXStreams(res any) ([]XStream, error) {
	items, err := asAnySlice(res)
	if err != nil {
		return nil, err
	}
	out := make([]XStream, len(items))
	for i, el := range items {
		pair, ok := el.([]any)
		if !ok || len(pair) != 2 {
			return nil, replyTypeErr(el, "stream read entry")
		}
		name, ok := pair[0].(string)
		if !ok {
			return nil, replyTypeErr(pair[0], "string")
		}
		msgs, err := asXMessages(pair[1])
		if err != nil {
			return nil, err
		}
		out[i] = XStream{Stream: name, Messages: msgs}
	}
	return out, nil
}
