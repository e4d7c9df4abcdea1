package redis

import "github.com/upstash/redis-go/internal/format"

// Reply shapes produced by the result formatting layer.
type (
	// MemberScore is one sorted-set member with its score.
	MemberScore = format.MemberScore

	// GeoPosition is a longitude/latitude pair.
	GeoPosition = format.GeoPosition

	// GeoSearchResult is one member of a geo radius or search reply.
	GeoSearchResult = format.GeoSearchResult

	// TimeResult is the server clock: Unix seconds plus microseconds.
	TimeResult = format.TimeResult
)

// XMessage is one stream entry.
type XMessage struct {
	ID     string
	Values map[string]string
}

// XStream is the portion of a stream read belonging to one stream key.
type XStream struct {
	Stream   string
	Messages []XMessage
}

// XPendingSummary describes a consumer group's pending entries.
type XPendingSummary struct {
	Count     int64
	Lower     string
	Higher    string
	Consumers map[string]int64
}
