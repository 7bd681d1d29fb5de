package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Entry is a single phone book record.
// IDs are assigned by the caller and expected to be unique within a list.
//
// Absent and Null remember fields that a stored record left out or set to
// null, so the record is written back the way it was read. Both are zero for
// entries built in code.
type Entry struct {
	ID          int    `json:"id" mapstructure:"id"`
	FirstName   string `json:"firstName" mapstructure:"firstName"`
	LastName    string `json:"lastName" mapstructure:"lastName"`
	PhoneNumber string `json:"phoneNumber" mapstructure:"phoneNumber"`

	Absent FieldMask `json:"-" mapstructure:"-"`
	Null   FieldMask `json:"-" mapstructure:"-"`
}

// FieldMask is a set of Entry fields.
type FieldMask uint8

const (
	FieldID FieldMask = 1 << iota
	FieldFirstName
	FieldLastName
	FieldPhoneNumber
)

// EntryFields maps the JSON name of each Entry field to its mask bit.
var EntryFields = []struct {
	Name string
	Mask FieldMask
}{
	{"id", FieldID},
	{"firstName", FieldFirstName},
	{"lastName", FieldLastName},
	{"phoneNumber", FieldPhoneNumber},
}

// Has reports whether f is in the set.
func (m FieldMask) Has(f FieldMask) bool { return m&f != 0 }

// MarshalJSON writes the fields in declaration order, skipping absent ones
// and writing null ones as null.
func (e Entry) MarshalJSON() ([]byte, error) {
	values := map[FieldMask]any{
		FieldID:          e.ID,
		FieldFirstName:   e.FirstName,
		FieldLastName:    e.LastName,
		FieldPhoneNumber: e.PhoneNumber,
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, f := range EntryFields {
		if e.Absent.Has(f.Mask) {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		buf.WriteString(strconv.Quote(f.Name))
		buf.WriteByte(':')
		if e.Null.Has(f.Mask) {
			buf.WriteString("null")
			continue
		}
		v, err := json.Marshal(values[f.Mask])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Seed returns the default entries used when storage holds nothing usable.
// The list is sorted by last name and a fresh copy is returned on every call.
func Seed() []Entry {
	return []Entry{
		{ID: 1, FirstName: "Fred", LastName: "Allen", PhoneNumber: "210-657-9886"},
		{ID: 2, FirstName: "Eric", LastName: "Elliot", PhoneNumber: "222-555-6575"},
		{ID: 3, FirstName: "Bill", LastName: "Gates", PhoneNumber: "343-654-9688"},
		{ID: 4, FirstName: "Steve", LastName: "Jobs", PhoneNumber: "220-454-6754"},
		{ID: 5, FirstName: "Steve", LastName: "Wozniak", PhoneNumber: "343-675-8786"},
	}
}

// CloneEntries returns a shallow copy of the slice. Entries are plain values
// so this is enough to detach the copy from the original.
func CloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
