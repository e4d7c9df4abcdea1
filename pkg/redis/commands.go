package redis

import (
	"sort"
	"time"
)

// Argument builder helpers shared by the command files.

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func millis(d time.Duration) int64 {
	return int64(d / time.Millisecond)
}

// sortedKeys fixes the token order of map-built commands so identical
// calls serialize identically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
