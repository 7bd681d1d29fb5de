package runtime

import (
	"slices"

	"github.com/aretw0/phonebook/pkg/domain"
	"golang.org/x/text/collate"
)

// sortEntries orders entries by last name under the collator.
// The sort is stable so equal names keep their stored order.
func sortEntries(c *collate.Collator, entries []domain.Entry) {
	slices.SortStableFunc(entries, func(a, b domain.Entry) int {
		return c.CompareString(sortKey(a), sortKey(b))
	})
}
