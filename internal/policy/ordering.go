package policy

import (
	"sort"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// SortArrivals orders reservations by priority weight (Fleet first), then by
// start time. Equal keys keep their input order.
func SortArrivals(rs []domain.Reservation) {
	sort.SliceStable(rs, func(i, j int) bool {
		wi, wj := rs[i].Priority.Weight(), rs[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return rs[i].StartAt.Before(rs[j].StartAt)
	})
}
