package orders

import (
	"sort"

	"github.com/kaffecito/kaffecito/pkg/enums"
)

// SortForDisplay orders pending orders before everything else, newest first
// within each partition. The sort is stable; non-pending statuses are not
// ranked against each other.
func SortForDisplay(list []Order) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		aPending := a.Status == enums.OrderStatusPending
		bPending := b.Status == enums.OrderStatusPending
		if aPending != bPending {
			return aPending
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
