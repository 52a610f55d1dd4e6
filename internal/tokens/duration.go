package tokens

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ttlPattern accepts values like "15m", "7d" or a bare integer (seconds).
var ttlPattern = regexp.MustCompile(`^(\d+)([smhdwy])?$`)

var unitSeconds = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
	"w": 604800,
	"y": 31536000,
}

// ParseTTL parses a human-readable TTL string into a duration.
// Accepted forms: "<n>" (seconds) or "<n><unit>" with unit in s,m,h,d,w,y.
// Anything else is a configuration error; callers are expected to fail
// startup on it rather than handle it per request.
func ParseTTL(s string) (time.Duration, error) {
	m := ttlPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid ttl %q: want <number> or <number><s|m|h|d|w|y>", s)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ttl %q: %w", s, err)
	}
	mult := int64(1)
	if m[2] != "" {
		mult = unitSeconds[m[2]]
	}
	return time.Duration(n*mult) * time.Second, nil
}
