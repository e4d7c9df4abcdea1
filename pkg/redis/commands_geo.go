package redis

import (
	"context"
	"strings"

	"github.com/upstash/redis-go/internal/protocol"
)

// GeoMember is one named position for GeoAdd.
type GeoMember struct {
	Longitude float64
	Latitude  float64
	Member    string
}

// GeoAddOptions modifies GeoAdd. NX and XX exclude each other.
type GeoAddOptions struct {
	// NX only adds new members; XX only updates existing ones.
	NX bool
	XX bool

	// CH counts changed members instead of added members in the reply.
	CH bool
}

// GeoAdd stores the given positions in the geo index at key and returns
// how many members were newly added (or changed, with the CH option).
func (c *Client) GeoAdd(ctx context.Context, key string, members []GeoMember, opts ...GeoAddOptions) (int64, error) {
	if len(members) == 0 {
		return 0, validationErr("GEOADD", "at least one member is required")
	}
	cmd := protocol.Command{"GEOADD", key}
	if len(opts) > 0 {
		o := opts[0]
		if o.NX && o.XX {
			return 0, validationErr("GEOADD", "NX and XX are mutually exclusive")
		}
		if o.NX {
			cmd = append(cmd, "NX")
		}
		if o.XX {
			cmd = append(cmd, "XX")
		}
		if o.CH {
			cmd = append(cmd, "CH")
		}
	}
	for _, m := range members {
		cmd = append(cmd, m.Longitude, m.Latitude, m.Member)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// GeoDist returns the distance between two members of the geo index in the
// given unit (m, km, mi or ft; empty means meters), or ErrNil when either
// member is missing.
func (c *Client) GeoDist(ctx context.Context, key, member1, member2, unit string) (float64, error) {
	cmd := protocol.Command{"GEODIST", key, member1, member2}
	if unit != "" {
		u := strings.ToLower(unit)
		switch u {
		case "m", "km", "mi", "ft":
			cmd = append(cmd, u)
		default:
			return 0, validationErr("GEODIST", "unit must be m, km, mi or ft, got %q", unit)
		}
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asFloat(res)
}

// GeoHash returns the Geohash strings of the given members; a nil entry
// means the member is missing.
func (c *Client) GeoHash(ctx context.Context, key string, members ...string) ([]*string, error) {
	if len(members) == 0 {
		return nil, validationErr("GEOHASH", "at least one member is required")
	}
	cmd := protocol.Command{"GEOHASH", key}
	for _, m := range members {
		cmd = append(cmd, m)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asOptionalStringSlice(res)
}

// GeoPos returns the positions of the given members in order; a nil entry
// means the member is missing.
func (c *Client) GeoPos(ctx context.Context, key string, members ...string) ([]*GeoPosition, error) {
	if len(members) == 0 {
		return nil, validationErr("GEOPOS", "at least one member is required")
	}
	cmd := protocol.Command{"GEOPOS", key}
	for _, m := range members {
		cmd = append(cmd, m)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	positions, ok := res.([]*GeoPosition)
	if !ok {
		return nil, replyTypeErr(res, "geo positions")
	}
	return positions, nil
}

// GeoSearchQuery describes a GeoSearch. Exactly one center (FromMember or
// FromLonLat) and exactly one shape (ByRadius or ByBox) are required.
type GeoSearchQuery struct {
	// FromMember centers the search on an existing member of the index.
	FromMember string

	// FromLonLat centers the search on explicit coordinates.
	FromLonLat *GeoPosition

	// ByRadius searches a circle of the given radius.
	ByRadius float64

	// ByBox searches an axis-aligned box of the given width and height.
	ByBoxWidth  float64
	ByBoxHeight float64

	// Unit applies to the radius or box dimensions: m, km, mi or ft.
	Unit string

	// Sort orders results by distance: "ASC" or "DESC". Empty leaves the
	// order to the server.
	Sort string

	// Count caps the number of results; CountAny lets the server stop at
	// the first Count matches instead of the closest ones.
	Count    int64
	CountAny bool

	// WithCoord, WithDist and WithHash attach the position, distance and
	// raw geohash integer to every result.
	WithCoord bool
	WithDist  bool
	WithHash  bool
}

func (q *GeoSearchQuery) appendTo(cmd protocol.Command) (protocol.Command, error) {
	name := cmd[0].(string)

	switch {
	case q.FromMember != "" && q.FromLonLat != nil:
		return nil, validationErr(name, "FromMember and FromLonLat are mutually exclusive")
	case q.FromMember != "":
		cmd = append(cmd, "FROMMEMBER", q.FromMember)
	case q.FromLonLat != nil:
		cmd = append(cmd, "FROMLONLAT", q.FromLonLat.Longitude, q.FromLonLat.Latitude)
	default:
		return nil, validationErr(name, "a search center is required")
	}

	unit := strings.ToLower(q.Unit)
	switch unit {
	case "m", "km", "mi", "ft":
	case "":
		unit = "m"
	default:
		return nil, validationErr(name, "unit must be m, km, mi or ft, got %q", q.Unit)
	}

	byRadius := q.ByRadius != 0
	byBox := q.ByBoxWidth != 0 || q.ByBoxHeight != 0
	switch {
	case byRadius && byBox:
		return nil, validationErr(name, "ByRadius and ByBox are mutually exclusive")
	case byRadius:
		cmd = append(cmd, "BYRADIUS", q.ByRadius, unit)
	case byBox:
		cmd = append(cmd, "BYBOX", q.ByBoxWidth, q.ByBoxHeight, unit)
	default:
		return nil, validationErr(name, "a search shape is required")
	}

	if q.Sort != "" {
		s := strings.ToUpper(q.Sort)
		if s != "ASC" && s != "DESC" {
			return nil, validationErr(name, "sort must be ASC or DESC, got %q", q.Sort)
		}
		cmd = append(cmd, s)
	}
	if q.Count > 0 {
		cmd = append(cmd, "COUNT", q.Count)
		if q.CountAny {
			cmd = append(cmd, "ANY")
		}
	} else if q.CountAny {
		return nil, validationErr(name, "CountAny requires Count")
	}

	if q.WithCoord {
		cmd = append(cmd, "WITHCOORD")
	}
	if q.WithDist {
		cmd = append(cmd, "WITHDIST")
	}
	if q.WithHash {
		cmd = append(cmd, "WITHHASH")
	}
	return cmd, nil
}

// GeoSearch returns the members of the geo index at key that fall inside
// the queried area. The optional fields of each result are set only when
// the matching With flag was requested.
func (c *Client) GeoSearch(ctx context.Context, key string, query GeoSearchQuery) ([]GeoSearchResult, error) {
	cmd, err := query.appendTo(protocol.Command{"GEOSEARCH", key})
	if err != nil {
		return nil, err
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asGeoSearchResults(res)
}

// GeoSearchStore runs a GeoSearch on src and stores the matching members
// in dst. With storeDist the stored scores are distances from the center
// instead of geohash integers. The query's With flags are not allowed
// here. Returns how many members were stored.
func (c *Client) GeoSearchStore(ctx context.Context, dst, src string, query GeoSearchQuery, storeDist bool) (int64, error) {
	if query.WithCoord || query.WithDist || query.WithHash {
		return 0, validationErr("GEOSEARCHSTORE", "WITH flags cannot be combined with a store destination")
	}
	cmd, err := query.appendTo(protocol.Command{"GEOSEARCHSTORE", dst, src})
	if err != nil {
		return 0, err
	}
	if storeDist {
		cmd = append(cmd, "STOREDIST")
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}
