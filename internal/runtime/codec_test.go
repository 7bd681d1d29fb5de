package runtime

import (
	"context"
	"testing"

	"github.com/aretw0/phonebook/pkg/adapters/memory"
	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func loadRaw(t *testing.T, raw string, opts ...MachineOption) []domain.Entry {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Set(ctx, domain.DefaultStorageKey, raw))

	m := NewMachine(store, opts...)
	require.True(t, m.Dispatch(ctx, domain.Read()))
	return m.Entries()
}

func ids(entries []domain.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestDecode_MissingLastNameSortsAsUndefined(t *testing.T) {
	raw := `[
		{"id":1,"lastName":"Zed"},
		{"id":2,"firstName":"Nameless"},
		{"id":3,"lastName":"Adams"},
		{"id":4,"lastName":"Unger"},
		{"id":5,"lastName":null}
	]`

	entries := loadRaw(t, raw)

	// Adams < null < undefined < Unger < Zed
	assert.Equal(t, []int{3, 5, 2, 4, 1}, ids(entries))
	assert.Equal(t, "", entries[2].LastName)
}

func TestDecode_StableForEqualNames(t *testing.T) {
	raw := `[
		{"id":9,"lastName":"Smith"},
		{"id":1,"lastName":"Jones"},
		{"id":4,"lastName":"Smith"},
		{"id":2,"lastName":"Smith"}
	]`

	assert.Equal(t, []int{1, 9, 4, 2}, ids(loadRaw(t, raw)))
}

func TestDecode_LocaleAwareComparison(t *testing.T) {
	raw := `[
		{"id":1,"lastName":"Zorn"},
		{"id":2,"lastName":"Östberg"},
		{"id":3,"lastName":"Olsen"},
		{"id":4,"lastName":"adams"}
	]`

	// Root collation ignores case and folds Ö next to O.
	assert.Equal(t, []int{4, 3, 2, 1}, ids(loadRaw(t, raw)))

	// Swedish sorts Ö after Z.
	assert.Equal(t, []int{4, 3, 1, 2}, ids(loadRaw(t, raw, WithLocale(language.Swedish))))
}

func TestDecode_Lenient(t *testing.T) {
	raw := `[{"id":"7","firstName":"Grace","lastName":"Hopper","phoneNumber":5551234,"extra":true}]`

	entries := loadRaw(t, raw)

	require.Len(t, entries, 1)
	assert.Equal(t, domain.Entry{ID: 7, FirstName: "Grace", LastName: "Hopper", PhoneNumber: "5551234"}, entries[0])
}

func TestEncodeEntries(t *testing.T) {
	raw, err := encodeEntries(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	raw, err = encodeEntries([]domain.Entry{{ID: 1, FirstName: "Fred", LastName: "Allen", PhoneNumber: "210-657-9886"}})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"firstName":"Fred","lastName":"Allen","phoneNumber":"210-657-9886"}]`, raw)
}

func TestDecodeEntries_Errors(t *testing.T) {
	for _, raw := range []string{
		"", "null", "{}", `"text"`, "[1]", "[null]", `[{"id":{"x":1}}]`,
		`[{"id":6.7}]`, `[{"id":1e300}]`, `[{"id":"6.7"}]`,
	} {
		_, err := decodeEntries(raw)
		assert.ErrorIs(t, err, domain.ErrCorruptData, "input %q", raw)
	}
}

func TestDecodeEntries_WholeFloatID(t *testing.T) {
	entries, err := decodeEntries(`[{"id":6.0,"lastName":"Six"}]`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 6, entries[0].ID)
}

func TestDecodeEntries_TracksMissingAndNullFields(t *testing.T) {
	entries, err := decodeEntries(`[{"id":1,"firstName":"NoLast"},{"id":2,"lastName":null,"phoneNumber":"1"}]`)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, domain.FieldLastName|domain.FieldPhoneNumber, entries[0].Absent)
	assert.Zero(t, entries[0].Null)
	assert.Equal(t, domain.FieldFirstName, entries[1].Absent)
	assert.Equal(t, domain.FieldLastName, entries[1].Null)

	assert.Equal(t, domain.UndefinedSortKey, sortKey(entries[0]))
	assert.Equal(t, "null", sortKey(entries[1]))
}

func TestEncodeEntries_WritesRecordsBackAsRead(t *testing.T) {
	raw := `[{"id":1,"firstName":"NoLast"},{"id":2,"lastName":null,"phoneNumber":"1"},{"firstName":"NoID","lastName":"Brown","phoneNumber":""}]`

	entries, err := decodeEntries(raw)
	require.NoError(t, err)

	out, err := encodeEntries(entries)
	require.NoError(t, err)
	assert.JSONEq(t, raw, out)
}
