package format

// MemberScore is one sorted-set member with its score.
type MemberScore struct {
	Member string
	Score  float64
}

// ScanResult is a key-space or set scan page: the cursor for the next call
// and the items of this page. A zero cursor means the iteration is done.
type ScanResult struct {
	Cursor uint64
	Keys   []string
}

// HScanResult is a hash scan page.
type HScanResult struct {
	Cursor uint64
	Fields map[string]string
}

// ZScanResult is a sorted-set scan page.
type ZScanResult struct {
	Cursor  uint64
	Members []MemberScore
}

// GeoPosition is a longitude/latitude pair.
type GeoPosition struct {
	Longitude float64
	Latitude  float64
}

// GeoSearchResult is one member of a geo radius or search reply. The
// optional fields are set only when the query asked for them; zero
// coordinates are valid positions, so absence is a nil pointer.
type GeoSearchResult struct {
	Member    string
	Distance  *float64
	Hash      *int64
	Longitude *float64
	Latitude  *float64
}

// TimeResult is the server clock reply: Unix seconds plus microseconds.
type TimeResult struct {
	Seconds      int64
	Microseconds int64
}
