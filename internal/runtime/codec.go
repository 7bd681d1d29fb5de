package runtime

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// decodeEntries parses a stored JSON array of entries.
//
// Decoding is lenient per field (numbers as strings and the like are
// accepted) but the top level must be an array of objects and an id must be
// a whole number that fits an int. Fields a record leaves out or sets to null
// are recorded on the entry so encodeEntries writes them back unchanged.
func decodeEntries(raw string) ([]domain.Entry, error) {
	var items []map[string]any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptData, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: not an array", domain.ErrCorruptData)
	}

	entries := make([]domain.Entry, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w: item %d is null", domain.ErrCorruptData, i)
		}
		if err := checkID(item["id"]); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", domain.ErrCorruptData, i, err)
		}

		var entry domain.Entry
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &entry,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(item); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", domain.ErrCorruptData, i, err)
		}

		for _, f := range domain.EntryFields {
			v, ok := item[f.Name]
			switch {
			case !ok:
				entry.Absent |= f.Mask
			case v == nil:
				entry.Null |= f.Mask
			}
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

// checkID rejects numeric ids that would lose precision when truncated to int.
func checkID(v any) error {
	n, ok := v.(float64)
	if !ok {
		return nil
	}
	if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
		return fmt.Errorf("id %v is not an integer", n)
	}
	return nil
}

// sortKey is the string an entry sorts by. A stored record without a
// lastName field sorts as "undefined" and one with a null lastName as "null",
// matching how older clients stringified them.
func sortKey(e domain.Entry) string {
	switch {
	case e.Absent.Has(domain.FieldLastName):
		return domain.UndefinedSortKey
	case e.Null.Has(domain.FieldLastName):
		return "null"
	default:
		return e.LastName
	}
}

// encodeEntries serializes entries as a JSON array. An empty list encodes as
// "[]", never "null".
func encodeEntries(entries []domain.Entry) (string, error) {
	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to marshal entries: %w", err)
	}
	return string(data), nil
}
