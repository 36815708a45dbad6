package timing

import (
	"sort"
	"time"
)

type classified[T any] struct {
	item T
	in   Input
	info Info
}

// Sort orders items for display: every current activity comes before every
// past one, and inside each group lower priority comes first with newer
// activities breaking ties. The input slice is not modified.
func Sort[T any](items []T, input func(T) Input, now time.Time) []T {
	rows := classify(items, input, now)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.info.IsPast != b.info.IsPast {
			return !a.info.IsPast
		}
		return before(a, b)
	})
	return unwrap(rows)
}

// Partition splits items into current and past, each sorted like Sort.
func Partition[T any](items []T, input func(T) Input, now time.Time) (current, past []T) {
	var cur, old []classified[T]
	for _, r := range classify(items, input, now) {
		if r.info.IsPast {
			old = append(old, r)
		} else {
			cur = append(cur, r)
		}
	}
	for _, group := range [][]classified[T]{cur, old} {
		sort.SliceStable(group, func(i, j int) bool { return before(group[i], group[j]) })
	}
	return unwrap(cur), unwrap(old)
}

func classify[T any](items []T, input func(T) Input, now time.Time) []classified[T] {
	rows := make([]classified[T], len(items))
	for i, item := range items {
		in := input(item)
		rows[i] = classified[T]{item: item, in: in, info: Analyze(in, now)}
	}
	return rows
}

func before[T any](a, b classified[T]) bool {
	if a.info.Priority != b.info.Priority {
		return a.info.Priority < b.info.Priority
	}
	if !a.in.CreatedAt.Equal(b.in.CreatedAt) {
		return a.in.CreatedAt.After(b.in.CreatedAt)
	}
	return a.in.ID > b.in.ID
}

func unwrap[T any](rows []classified[T]) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.item
	}
	return out
}
