package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func today() *time.Time { return day(2026, 10, 18) }

func TestAnalyzeTimeframeExamples(t *testing.T) {
	info := Analyze(Input{Timeframe: "In 30 mins"}, now)

	assert.False(t, info.IsPast)
	assert.True(t, info.IsImmediate)
	assert.Equal(t, 30, info.Priority)
	assert.Nil(t, info.ResolvedAt)
}

func TestAnalyzeDateAndTime(t *testing.T) {
	info := Analyze(Input{Date: today(), Time: "23:59"}, now)

	assert.False(t, info.IsPast)
	assert.True(t, info.IsImmediate)
	assert.Equal(t, 59, info.Priority)
	require.NotNil(t, info.ResolvedAt)
	assert.Equal(t, time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC), *info.ResolvedAt)
}

func TestAnalyzeCompletedWins(t *testing.T) {
	info := Analyze(Input{Completed: true, Date: day(2026, 12, 1), Time: "10:00", Timeframe: "right now"}, now)

	assert.Equal(t, Info{IsPast: true, Priority: PastPriority}, info)
}

func TestAnalyzeBoundaryAtNow(t *testing.T) {
	info := Analyze(Input{Date: today(), Time: "23:00"}, now)

	assert.False(t, info.IsPast, "an activity starting exactly now is not past")
	assert.True(t, info.IsImmediate)
	assert.Equal(t, 0, info.Priority)

	info = Analyze(Input{Date: today(), Time: "22:59"}, now)
	assert.True(t, info.IsPast)
	assert.False(t, info.IsImmediate)
	assert.Equal(t, PastPriority, info.Priority)
}

func TestAnalyzeImmediateWindow(t *testing.T) {
	at := now.Add(60 * time.Minute)
	in60 := Input{Date: &at, Time: at.Format("15:04")}
	assert.True(t, Analyze(in60, now).IsImmediate)

	at61 := now.Add(61 * time.Minute)
	in61 := Input{Date: &at61, Time: at61.Format("15:04")}
	info := Analyze(in61, now)
	assert.False(t, info.IsImmediate)
	assert.Equal(t, 61, info.Priority)
}

func TestAnalyzePriorityMonotonic(t *testing.T) {
	prev := -1
	for _, offset := range []time.Duration{5 * time.Minute, 2 * time.Hour, 26 * time.Hour, 72 * time.Hour} {
		at := now.Add(offset)
		p := Analyze(Input{Date: &at, Time: at.Format("15:04")}, now).Priority
		assert.Greater(t, p, prev, "offset %s", offset)
		prev = p
	}
}

func TestAnalyzeIsPure(t *testing.T) {
	in := Input{Date: day(2026, 10, 19), Time: "08:15", Timeframe: "tomorrow"}
	assert.Equal(t, Analyze(in, now), Analyze(in, now))
}

func TestAnalyzeDateOnly(t *testing.T) {
	tests := []struct {
		name      string
		date      *time.Time
		past      bool
		immediate bool
		priority  int
	}{
		{"today", today(), false, true, 0},
		{"tomorrow", day(2026, 10, 19), false, false, 1440},
		{"in three days", day(2026, 10, 21), false, false, 3 * 1440},
		{"yesterday", day(2026, 10, 17), true, false, PastPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Analyze(Input{Date: tt.date}, now)
			assert.Equal(t, tt.past, info.IsPast)
			assert.Equal(t, tt.immediate, info.IsImmediate)
			assert.Equal(t, tt.priority, info.Priority)
			assert.True(t, info.DateOnly)
		})
	}
}

func TestAnalyzeMalformedTimeFallsBackToDate(t *testing.T) {
	for _, clock := range []string{"25:00", "12:75", "noon", "7", "7pm"} {
		info := Analyze(Input{Date: day(2026, 10, 19), Time: clock}, now)
		assert.Equal(t, 1440, info.Priority, clock)
		assert.True(t, info.DateOnly, clock)
	}
}

func TestAnalyzeZeroDateUsesTimeframe(t *testing.T) {
	var zero time.Time
	info := Analyze(Input{Date: &zero, Timeframe: "tomorrow"}, now)
	assert.Equal(t, 1440, info.Priority)
	assert.Nil(t, info.ResolvedAt)
}

func TestAnalyzeTimeframeRules(t *testing.T) {
	tests := []struct {
		timeframe string
		past      bool
		immediate bool
		priority  int
	}{
		{"right now", false, true, 0},
		{"NOW!", false, true, 0},
		{"in 5 min", false, true, 5},
		{"in 45 minutes", false, false, 45},
		{"in 1 hour", false, true, 60},
		{"in 2 hours", false, false, 120},
		{"tonight", false, false, 480},
		{"this evening", false, false, 480},
		{"later today", false, false, 480},
		{"tomorrow evening", false, false, 1440},
		{"sometime this week", false, false, 4320},
		{"Friday afternoon", false, false, 4320},
		{"yesterday", true, false, PastPriority},
		{"a while ago", true, false, PastPriority},
		{"last month", true, false, PastPriority},
		// first match wins: the minutes rule fires before the past rule
		{"30 min ago", false, true, 30},
		{"whenever works", false, false, AmbiguousPriority},
		// counts too large to be meant literally fall through to the default
		{"in 10000 min", false, false, 10000},
		{"in 20000 hours", false, false, AmbiguousPriority},
		{"in 200000000000000000 hours", false, false, AmbiguousPriority},
		{"in 99999999999999999999 minutes", false, false, AmbiguousPriority},
	}
	for _, tt := range tests {
		t.Run(tt.timeframe, func(t *testing.T) {
			info := Analyze(Input{Timeframe: tt.timeframe}, now)
			assert.Equal(t, tt.past, info.IsPast)
			assert.Equal(t, tt.immediate, info.IsImmediate)
			assert.Equal(t, tt.priority, info.Priority)
		})
	}
}

func TestAnalyzeNothingKnown(t *testing.T) {
	assert.Equal(t, Info{Priority: UnknownPriority}, Analyze(Input{}, now))
	assert.Equal(t, Info{Priority: UnknownPriority}, Analyze(Input{Timeframe: "   "}, now))
}

func TestParseClock(t *testing.T) {
	h, m, ok := ParseClock("07:05")
	require.True(t, ok)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)

	_, _, ok = ParseClock("24:00")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	d := ParseDate("2026-10-20")
	require.NotNil(t, d)
	assert.Equal(t, 20, d.Day())

	assert.NotNil(t, ParseDate("2026-10-20T10:00:00Z"))
	assert.Nil(t, ParseDate("next tuesday"))
	assert.Nil(t, ParseDate(""))
}
