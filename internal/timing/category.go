package timing

import (
	"regexp"
	"time"
)

// Category is how far in advance an activity was organized.
type Category string

const (
	Spontaneous Category = "spontaneous"
	Planned     Category = "planned"
)

// SpontaneousWindow is how soon a resolved activity must start to count as spontaneous.
const SpontaneousWindow = 4 * time.Hour

// explicitClock matches a time of day written into free text ("7pm", "18:30").
var explicitClock = regexp.MustCompile(`\b\d{1,2}(:\d{2})\s*(am|pm)?\b|\b\d{1,2}\s*(am|pm)\b`)

type categoryRule struct {
	match    func(timeframe string) bool
	category Category
}

var plannedWords = append([]string{"tomorrow", "next week", "weekend"}, weekdays...)

var categoryRules = []categoryRule{
	{
		match:    func(tf string) bool { return hasAny(tf, "now", "asap", "immediately") },
		category: Spontaneous,
	},
	{
		match:    func(tf string) bool { return soonByNumber(tf) || hasAny(tf, "soon", "in a bit") },
		category: Spontaneous,
	},
	{
		match:    func(tf string) bool { return hasAny(tf, "today") && explicitClock.MatchString(tf) },
		category: Planned,
	},
	{
		match:    func(tf string) bool { return hasAny(tf, "today", "tonight") },
		category: Spontaneous,
	},
	{
		match:    func(tf string) bool { return hasAny(tf, plannedWords...) },
		category: Planned,
	},
}

// InferCategory decides spontaneous or planned. A resolved date wins; otherwise
// the timeframe text is inspected and anything unrecognized is planned.
func InferCategory(in Input, now time.Time) Category {
	info := Analyze(in, now)
	if info.ResolvedAt != nil {
		if info.ResolvedAt.Sub(now) <= SpontaneousWindow {
			return Spontaneous
		}
		return Planned
	}

	timeframe := normalize(in.Timeframe)
	if timeframe == "" {
		return Planned
	}
	for _, r := range categoryRules {
		if r.match(timeframe) {
			return r.category
		}
	}
	return Planned
}

// soonByNumber covers "in 20 mins" and "in 1-3 hours".
func soonByNumber(tf string) bool {
	if n, ok := leadingNumber(minutesPattern, tf); ok && n <= 30 {
		return true
	}
	if n, ok := leadingNumber(hoursPattern, tf); ok && n >= 1 && n <= 3 {
		return true
	}
	return false
}

// SuggestTimeframes lists example timeframes for an activity form.
func SuggestTimeframes(c Category) []string {
	if c == Spontaneous {
		return []string{
			"Right now",
			"In 30 minutes",
			"In 1 hour",
			"In 2 hours",
			"Later today",
			"This evening",
			"Tonight",
		}
	}
	return []string{
		"Tomorrow morning",
		"Tomorrow evening",
		"This weekend",
		"Next week",
		"Friday evening",
		"Saturday afternoon",
	}
}
