package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	Name   string
	Email  string
	Status string
	Due    string
}

var records = []record{
	{"Budi Santoso", "budi@example.com", "paid", "2024-03-01"},
	{"Siti Rahma", "siti@example.com", "pending", "2024-03-15"},
	{"Agus Wibowo", "agus@example.com", "overdue", "2024-04-01"},
	{"Budi Hartono", "hartono@example.com", "pending", "2024-04-20"},
}

func names(rs []record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func textFields(r record) []string { return []string{r.Name, r.Email} }
func statusField(r record) string  { return r.Status }
func dueField(r record) string     { return r.Due }

func TestFilter_VacuousPredicatesReturnAllInOrder(t *testing.T) {
	got := Filter(records,
		Text("", textFields),
		Status("all", statusField),
		DateBetween("", "", dueField),
	)
	assert.Equal(t, records, got)
}

func TestFilter_PreservesRelativeOrder(t *testing.T) {
	got := Filter(records, Text("budi", textFields))
	assert.Equal(t, []string{"Budi Santoso", "Budi Hartono"}, names(got))
}

func TestText_CaseInsensitiveSubstring(t *testing.T) {
	got := Filter(records, Text("SITI", textFields))
	assert.Equal(t, []string{"Siti Rahma"}, names(got))

	got = Filter(records, Text("example.com", textFields))
	assert.Len(t, got, 4)

	got = Filter(records, Text("zzz", textFields))
	assert.Empty(t, got)
}

func TestStatus_ExactMatchAndSentinel(t *testing.T) {
	got := Filter(records, Status("pending", statusField))
	assert.Equal(t, []string{"Siti Rahma", "Budi Hartono"}, names(got))

	assert.Len(t, Filter(records, Status("", statusField)), 4)
	assert.Len(t, Filter(records, Status(StatusAll, statusField)), 4)
	assert.Empty(t, Filter(records, Status("refunded", statusField)))
}

func TestDateBetween_Bounds(t *testing.T) {
	got := Filter(records, DateBetween("2024-03-10", "2024-04-05", dueField))
	assert.Equal(t, []string{"Siti Rahma", "Agus Wibowo"}, names(got))

	// Either bound alone still constrains; the missing one is vacuous.
	got = Filter(records, DateBetween("2024-04-01", "", dueField))
	assert.Equal(t, []string{"Agus Wibowo", "Budi Hartono"}, names(got))

	got = Filter(records, DateBetween("", "2024-03-01", dueField))
	assert.Equal(t, []string{"Budi Santoso"}, names(got))

	// Bounds are inclusive on both ends.
	got = Filter(records, DateBetween("2024-03-01", "2024-03-01", dueField))
	assert.Equal(t, []string{"Budi Santoso"}, names(got))
}

func TestDateBetween_RejectsNonNormalizedDates(t *testing.T) {
	odd := []record{{Name: "X", Due: "03/05/2024"}}

	// A non-normalized field value cannot be ordered lexicographically, so it
	// never satisfies an active bound.
	assert.Empty(t, Filter(odd, DateBetween("2024-01-01", "", dueField)))
	// With no bounds set the constraint is vacuous regardless of the field.
	assert.Len(t, Filter(odd, DateBetween("", "", dueField)), 1)
	// A malformed bound matches nothing rather than comparing wrongly.
	assert.Empty(t, Filter(records, DateBetween("yesterday", "", dueField)))
}

func TestFilter_ComposesWithAnd(t *testing.T) {
	got := Filter(records,
		Text("budi", textFields),
		Status("pending", statusField),
		DateBetween("2024-04-01", "2024-12-31", dueField),
	)
	assert.Equal(t, []string{"Budi Hartono"}, names(got))
}
