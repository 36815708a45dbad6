// Package timing classifies when an activity happens relative to now.
//
// An activity is described either by a structured date (optionally with an
// HH:MM time of day) or by a free-text timeframe such as "in 30 mins". The
// functions here never fail: input that cannot be understood falls through to
// the next tier and ends in a low-urgency default.
package timing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// PastPriority is assigned to anything that already happened.
	PastPriority = 1000
	// UnknownPriority is used when neither a date nor a timeframe is given.
	UnknownPriority = 500
	// AmbiguousPriority is used for a timeframe no rule recognizes.
	AmbiguousPriority = 12 * 60
	// ImmediateWindow is how far ahead, in minutes, a timed activity counts as immediate.
	ImmediateWindow = 60

	minutesPerDay = 24 * 60
)

// Input is the temporal part of an activity.
type Input struct {
	ID        string
	Date      *time.Time
	Time      string
	Timeframe string
	Completed bool
	CreatedAt time.Time
}

// Info is the classification of one activity. Priority is lower for more
// urgent activities.
type Info struct {
	IsPast      bool
	IsImmediate bool
	Priority    int
	// ResolvedAt is set when a structured date was usable. For date-only
	// activities it is the start of that day.
	ResolvedAt *time.Time
	// DateOnly reports that ResolvedAt came from a date without a time of day.
	DateOnly bool
}

var clockPattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*$`)

// Analyze classifies in against now. Structured dates are interpreted in
// now's location.
func Analyze(in Input, now time.Time) Info {
	if in.Completed {
		return Info{IsPast: true, Priority: PastPriority}
	}

	if in.Date != nil && !in.Date.IsZero() {
		if at, ok := combine(*in.Date, in.Time, now.Location()); ok {
			return fromInstant(at, now)
		}
		return fromDate(*in.Date, now)
	}

	timeframe := normalize(in.Timeframe)
	if timeframe == "" {
		return Info{Priority: UnknownPriority}
	}
	return matchTimeframe(timeframe)
}

// ParseClock parses an HH:MM time of day.
func ParseClock(s string) (hour, minute int, ok bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
// It returns nil for anything else.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func normalize(timeframe string) string {
	return strings.ToLower(strings.TrimSpace(timeframe))
}

func combine(date time.Time, clock string, loc *time.Location) (time.Time, bool) {
	if clock == "" {
		return time.Time{}, false
	}
	hour, minute, ok := ParseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc), true
}

func fromInstant(at, now time.Time) Info {
	diffMinutes := int(math.Floor(at.Sub(now).Minutes()))
	isPast := at.Before(now)

	info := Info{
		IsPast:      isPast,
		IsImmediate: !isPast && diffMinutes <= ImmediateWindow,
		Priority:    PastPriority,
		ResolvedAt:  &at,
	}
	if !isPast {
		info.Priority = max(0, diffMinutes)
	}
	return info
}

func fromDate(date, now time.Time) Info {
	day := startOfDay(date, now.Location())
	diffDays := daysBetween(startOfDay(now, now.Location()), day)
	isPast := diffDays < 0

	info := Info{
		IsPast:      isPast,
		IsImmediate: !isPast && diffDays <= 0,
		Priority:    PastPriority,
		ResolvedAt:  &day,
		DateOnly:    true,
	}
	if !isPast {
		info.Priority = max(0, diffDays*minutesPerDay)
	}
	return info
}

// startOfDay keeps the calendar date of t and moves it to midnight in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween rounds so that DST transitions do not shift the count.
func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
