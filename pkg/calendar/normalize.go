package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	isoPattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

type NormalizationError struct {
	Raw    string
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Raw, e.Reason)
}

// NormalizeAt converts raw into a Date. Blank input means "not provided" and yields today.
//
// Accepted forms, in order:
//   - YYYY-MM-DD
//   - D/M/YYYY, day first unless only the second component can be a day
//   - anything dateparse understands, keeping the date as written
func NormalizeAt(raw string, today Date) (Date, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return today, nil
	}

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		return build(raw, atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := slashPattern.FindStringSubmatch(s); m != nil {
		first, second, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		day, month := first, second
		if first <= 12 && second > 12 {
			day, month = second, first
		}
		return build(raw, year, month, day)
	}

	if isDigits(s) {
		// dateparse reads bare digit runs as unix timestamps
		return Date{}, &NormalizationError{Raw: raw, Reason: "unrecognized date format"}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return Date{}, &NormalizationError{Raw: raw, Reason: "unrecognized date format"}
	}

	return DateOf(t), nil
}

func build(raw string, year, month, day int) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, &NormalizationError{Raw: raw, Reason: "month out of range"}
	}

	d := NewDate(year, time.Month(month), day)
	if day < 1 || !d.IsValid() {
		return Date{}, &NormalizationError{Raw: raw, Reason: "day out of range"}
	}

	return d, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalizer binds NormalizeAt to a clock and a time zone for "today".
type Normalizer struct {
	now      func() time.Time
	location *time.Location
}

func NewNormalizer(now func() time.Time, location *time.Location) *Normalizer {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &Normalizer{now: now, location: location}
}

func (n *Normalizer) Today() Date {
	return DateOf(n.now().In(n.location))
}

func (n *Normalizer) Normalize(raw string) (Date, error) {
	return NormalizeAt(raw, n.Today())
}
