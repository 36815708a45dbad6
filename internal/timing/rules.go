package timing

import (
	"regexp"
	"strconv"
	"strings"
)

// rule is one step of the free-text cascade. Rules run in order and the
// first one that matches decides the result.
type rule struct {
	name  string
	match func(timeframe string) (Info, bool)
}

var (
	minutesPattern = regexp.MustCompile(`(\d+)\s*min`)
	hoursPattern   = regexp.MustCompile(`(\d+)\s*hour`)
)

// maxTimeframeCount bounds the number read from "in N minutes" so the
// priority arithmetic cannot overflow. Larger counts are left unmatched.
const maxTimeframeCount = 10000

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var timeframeRules = []rule{
	{
		name:  "now",
		match: containsAny(Info{IsImmediate: true, Priority: 0}, "now", "right now"),
	},
	{
		name: "minutes",
		match: func(tf string) (Info, bool) {
			n, ok := leadingNumber(minutesPattern, tf)
			if !ok {
				return Info{}, false
			}
			return Info{IsImmediate: n <= 30, Priority: n}, true
		},
	},
	{
		name: "hours",
		match: func(tf string) (Info, bool) {
			n, ok := leadingNumber(hoursPattern, tf)
			if !ok {
				return Info{}, false
			}
			return Info{IsImmediate: n <= 1, Priority: n * 60}, true
		},
	},
	{
		name:  "today",
		match: containsAny(Info{Priority: 8 * 60}, "today", "tonight", "this evening"),
	},
	{
		name:  "tomorrow",
		match: containsAny(Info{Priority: minutesPerDay}, "tomorrow"),
	},
	{
		name:  "this week",
		match: containsAny(Info{Priority: 3 * minutesPerDay}, append([]string{"this week"}, weekdays...)...),
	},
	{
		name:  "past",
		match: containsAny(Info{IsPast: true, Priority: PastPriority}, "yesterday", "last week", "last month", "ago", "earlier", "before"),
	},
}

// matchTimeframe runs the cascade over a lower-cased timeframe.
func matchTimeframe(timeframe string) Info {
	for _, r := range timeframeRules {
		if info, ok := r.match(timeframe); ok {
			return info
		}
	}
	return Info{Priority: AmbiguousPriority}
}

func containsAny(result Info, needles ...string) func(string) (Info, bool) {
	return func(tf string) (Info, bool) {
		if hasAny(tf, needles...) {
			return result, true
		}
		return Info{}, false
	}
}

func hasAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func leadingNumber(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n > maxTimeframeCount {
		return 0, false
	}
	return n, true
}
