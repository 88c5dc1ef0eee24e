package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxQuantity bounds a single line's quantity so merged lines cannot
// overflow when summed.
const MaxQuantity = math.MaxInt32

var (
	priceRe  = regexp.MustCompile(`^(0|[1-9]\d*)\.\d{2}$`)
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
	amountRe = regexp.MustCompile(`^(0|[1-9]\d*)(\.\d{1,2})?$`)
)

// dateLayouts are what a datetime-local input submits; neither carries a zone.
var dateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

func isPositiveInt(s string) bool {
	return digitsRe.MatchString(s) && strings.Trim(s, "0") != ""
}

func fitsInt32(s string) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n <= MaxQuantity
}

func isFormDate(s string) bool {
	_, ok := parseDateTime(s, nil)
	return ok
}

// parseDateTime reads RFC 3339 or a zoneless datetime-local value in loc
// and returns it in UTC.
func parseDateTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
