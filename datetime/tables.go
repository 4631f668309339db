package datetime

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// pattern pairs an expression with a builder that validates the captured
// fields against the calendar and assembles the instant. Builders return
// ok=false for expressions the pattern shape admits but the calendar does
// not (month 13, February 30th, hour 25).
type pattern struct {
	re    *regexp.Regexp
	build func(groups []string, now time.Time) (time.Time, Granularity, bool)
}

const monthAlt = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|` +
	`jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|` +
	`nov(?:ember)?|dec(?:ember)?`

// patterns is the grammar, most specific first. Order matters twice: Parse
// returns the first full-cover pattern, and FindAll's containment filter
// prefers earlier patterns among equal spans.
var patterns = []pattern{
	// 2024-05-06
	{
		re:    regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`),
		build: buildYMD(1, 2, 3),
	},
	// 6.5.2024 (day first)
	{
		re:    regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{4})\b`),
		build: buildYMD(3, 2, 1),
	},
	// 5/6/2024 (month first)
	{
		re:    regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`),
		build: buildYMD(3, 1, 2),
	},
	// 14:30, 14:30:59, 2:30 pm
	{
		re:    regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})(?::(\d{2}))?(?:\s?([ap])\.?m\.?)?\b`),
		build: buildClock,
	},
	// May 6, May 6th 2024
	{
		re: regexp.MustCompile(
			`(?i)\b(` + monthAlt + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`),
		build: buildMonthName(1, 2, 3),
	},
	// 6 May, 6th May 2024
	{
		re: regexp.MustCompile(
			`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthAlt + `)\.?(?:,?\s+(\d{4}))?\b`),
		build: buildMonthName(2, 1, 3),
	},
	// May 2024
	{
		re:    regexp.MustCompile(`(?i)\b(` + monthAlt + `)\.?\s+(\d{4})\b`),
		build: buildMonthYear,
	},
	// monday .. sunday
	{
		re:    regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
		build: buildWeekday,
	},
	// relative words
	{
		re:    regexp.MustCompile(`(?i)\b(today|tomorrow|yesterday|noon|midnight)\b`),
		build: buildRelative,
	},
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// monthByName resolves a full or three-letter month name.
func monthByName(name string) (time.Month, bool) {
	key := strings.ToLower(name)
	if len(key) > 3 {
		key = key[:3]
	}
	m, ok := months[key]
	return m, ok
}

// atoi converts digit-only captures; the patterns guarantee the shape.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// validDate reports whether y-m-d names a real calendar day, catching
// normalization like February 30th rolling into March.
func validDate(y int, m time.Month, d int) (time.Time, bool) {
	if m < time.January || m > time.December || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// buildYMD assembles a fully numeric date from the capture indices holding
// year, month and day.
func buildYMD(yi, mi, di int) func([]string, time.Time) (time.Time, Granularity, bool) {
	return func(g []string, _ time.Time) (time.Time, Granularity, bool) {
		t, ok := validDate(atoi(g[yi]), time.Month(atoi(g[mi])), atoi(g[di]))
		return t, GranularityDay, ok
	}
}

// buildClock assembles a clock time on the reference day. The am/pm marker
// constrains the hour to 1..12; without it the hour reads as 24-hour.
func buildClock(g []string, now time.Time) (time.Time, Granularity, bool) {
	hour, minute := atoi(g[1]), atoi(g[2])
	if minute > 59 {
		return time.Time{}, GranularityUnknown, false
	}
	switch strings.ToLower(g[4]) {
	case "a":
		if hour < 1 || hour > 12 {
			return time.Time{}, GranularityUnknown, false
		}
		hour %= 12
	case "p":
		if hour < 1 || hour > 12 {
			return time.Time{}, GranularityUnknown, false
		}
		hour = hour%12 + 12
	default:
		if hour > 23 {
			return time.Time{}, GranularityUnknown, false
		}
	}
	gran := GranularityMinute
	second := 0
	if g[3] != "" {
		second = atoi(g[3])
		if second > 59 {
			return time.Time{}, GranularityUnknown, false
		}
		gran = GranularitySecond
	}
	t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, 0, time.UTC)
	return t, gran, true
}

// buildMonthName assembles a month-name date; an omitted year defaults to
// the reference year.
func buildMonthName(mi, di, yi int) func([]string, time.Time) (time.Time, Granularity, bool) {
	return func(g []string, now time.Time) (time.Time, Granularity, bool) {
		month, ok := monthByName(g[mi])
		if !ok {
			return time.Time{}, GranularityUnknown, false
		}
		year := now.Year()
		if g[yi] != "" {
			year = atoi(g[yi])
		}
		t, ok := validDate(year, month, atoi(g[di]))
		return t, GranularityDay, ok
	}
}

// buildMonthYear assembles a month-granular instant pinned to the first of
// the month.
func buildMonthYear(g []string, _ time.Time) (time.Time, Granularity, bool) {
	month, ok := monthByName(g[1])
	if !ok {
		return time.Time{}, GranularityUnknown, false
	}
	t := time.Date(atoi(g[2]), month, 1, 0, 0, 0, 0, time.UTC)
	return t, GranularityMonth, true
}

// buildWeekday resolves a weekday name to its next occurrence strictly
// after the reference day.
func buildWeekday(g []string, now time.Time) (time.Time, Granularity, bool) {
	target, ok := weekdays[strings.ToLower(g[1])]
	if !ok {
		return time.Time{}, GranularityUnknown, false
	}
	delta := (int(target) - int(now.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, delta), GranularityDay, true
}

// buildRelative resolves the fixed relative vocabulary against the
// reference day.
func buildRelative(g []string, now time.Time) (time.Time, Granularity, bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch strings.ToLower(g[1]) {
	case "today":
		return day, GranularityDay, true
	case "tomorrow":
		return day.AddDate(0, 0, 1), GranularityDay, true
	case "yesterday":
		return day.AddDate(0, 0, -1), GranularityDay, true
	case "noon":
		return day.Add(12 * time.Hour), GranularityHour, true
	case "midnight":
		return day, GranularityHour, true
	}
	return time.Time{}, GranularityUnknown, false
}
