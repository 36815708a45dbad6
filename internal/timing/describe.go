package timing

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Labels is everything the presentation layer needs to render an activity's timing.
type Labels struct {
	Info
	Category      Category
	Relative      string
	HappeningSoon bool
}

// Label classifies in and derives its display fields.
func Label(in Input, now time.Time) Labels {
	info := Analyze(in, now)
	return Labels{
		Info:          info,
		Category:      InferCategory(in, now),
		Relative:      describe(in, info, now),
		HappeningSoon: info.IsImmediate && !info.IsPast,
	}
}

// Describe returns a human readable relative time such as "in 30 minutes"
// or "3 days ago". Without a usable date it returns the timeframe itself.
func Describe(in Input, now time.Time) string {
	return describe(in, Analyze(in, now), now)
}

func describe(in Input, info Info, now time.Time) string {
	if info.ResolvedAt == nil {
		if tf := strings.TrimSpace(in.Timeframe); tf != "" {
			return tf
		}
		return "Time not specified"
	}

	if info.DateOnly {
		days := daysBetween(startOfDay(now, now.Location()), *info.ResolvedAt)
		switch {
		case days == 0:
			return "today"
		case days == 1:
			return "tomorrow"
		case days == -1:
			return "yesterday"
		case days < 0:
			return fmt.Sprintf("%s ago", plural(-days, "day"))
		default:
			return fmt.Sprintf("in %s", plural(days, "day"))
		}
	}

	diffMinutes := int(math.Floor(info.ResolvedAt.Sub(now).Minutes()))
	if info.IsPast {
		ago := -diffMinutes
		switch {
		case ago < 60:
			return fmt.Sprintf("%s ago", plural(ago, "minute"))
		case ago < minutesPerDay:
			return fmt.Sprintf("%s ago", plural(ago/60, "hour"))
		default:
			return fmt.Sprintf("%s ago", plural(ago/minutesPerDay, "day"))
		}
	}

	switch {
	case diffMinutes < 60:
		return fmt.Sprintf("in %s", plural(diffMinutes, "minute"))
	case diffMinutes < minutesPerDay:
		return fmt.Sprintf("in %s", plural(diffMinutes/60, "hour"))
	default:
		return fmt.Sprintf("in %s", plural(diffMinutes/minutesPerDay, "day"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
