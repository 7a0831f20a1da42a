package service

import (
	"sort"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

// VenueIDsWithAllTags tallies junction rows per venue and keeps the venues
// that matched every one of the required tags. rows is expected to already be
// restricted to the requested tag ids, so a venue's tally equals the number
// of requested tags it carries. The result is sorted ascending so callers get
// a deterministic id list regardless of row order.
func VenueIDsWithAllTags(rows []domain.VenueTag, required int) []int64 {
	if required <= 0 {
		return nil
	}
	tally := make(map[int64]int, len(rows))
	for _, row := range rows {
		tally[row.VenueID]++
	}
	ids := make([]int64, 0, len(tally))
	for venueID, count := range tally {
		if count == required {
			ids = append(ids, venueID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
