package todo

import (
	"sort"
	"time"
)

// NormalizePositions reassigns Position values 1..N in place, following the
// current relative order. The sort is stable: ties on Position keep their
// insertion order. Calling it twice is a no-op. Applied after every mutation,
// before persisting.
func NormalizePositions(todos []Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].Position < todos[j].Position
	})
	for i := range todos {
		todos[i].Position = i + 1
	}
}

// ReorderByOrder reorders todos in place so that the ids named in orderedIDs
// appear first, in the given order, followed by the remaining items in their
// prior relative order. Ids not present in the list are ignored. Returns
// false without mutating anything when the list has at most one item or the
// computed order matches the existing one; otherwise Position and UpdatedAt
// are stamped on the entries that moved.
func ReorderByOrder(todos []Todo, orderedIDs []string) bool {
	if len(todos) <= 1 {
		return false
	}

	index := make(map[string]int, len(todos))
	for i, t := range todos {
		index[t.ID] = i
	}

	next := make([]int, 0, len(todos))
	taken := make(map[int]bool, len(todos))
	for _, id := range orderedIDs {
		i, ok := index[id]
		if !ok || taken[i] {
			continue
		}
		next = append(next, i)
		taken[i] = true
	}
	for i := range todos {
		if !taken[i] {
			next = append(next, i)
		}
	}

	changed := false
	for pos, i := range next {
		if i != pos {
			changed = true
			break
		}
	}
	if !changed {
		return false
	}

	now := time.Now()
	reordered := make([]Todo, len(todos))
	for pos, i := range next {
		item := todos[i]
		if item.Position != pos+1 {
			item.Position = pos + 1
			item.UpdatedAt = now
		}
		reordered[pos] = item
	}
	copy(todos, reordered)
	return true
}
