package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unihub/admin-console/internal/models"
)

func sampleRoster() []models.UserRecord {
	return Normalize([]models.UserRecord{
		{UserID: "u1", FirstName: "Ann", Email: "ann@uni.edu", StatusRaw: "ACTIVE"},
		{UserID: "u2", FirstName: "Bob", Email: "bob@uni.edu", StatusRaw: "INACTIVE"},
		{UserID: "u3", FirstName: "amy", Email: "amy@uni.edu", StatusRaw: "ACTIVE"},
	}, MissingInactive)
}

func ids(records []models.UserRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.UserID
	}
	return out
}

func TestProjectSearchActiveSorted(t *testing.T) {
	q := ViewQuery{SearchTerm: "a", Status: StatusActive, SortField: FieldFirstName, Direction: SortAsc}

	got := Project(sampleRoster(), q)

	require.Len(t, got, 2)
	// case-insensitive name order: amy before Ann
	assert.Equal(t, []string{"u3", "u1"}, ids(got))
}

func TestProjectAllMatchesPureSort(t *testing.T) {
	q := ViewQuery{Status: StatusAll, SortField: FieldFirstName, Direction: SortAsc}

	got := Project(sampleRoster(), q)
	assert.Equal(t, []string{"u3", "u1", "u2"}, ids(got))
}

func TestProjectStableSort(t *testing.T) {
	records := Normalize([]models.UserRecord{
		{UserID: "u1", FirstName: "Ann", Contact: "111", StatusRaw: "ACTIVE"},
		{UserID: "u2", FirstName: "ann", Contact: "222", StatusRaw: "ACTIVE"},
		{UserID: "u3", FirstName: "ANN", Contact: "333", StatusRaw: "ACTIVE"},
		{UserID: "u4", FirstName: "Bea", Contact: "444", StatusRaw: "ACTIVE"},
	}, MissingInactive)

	asc := Project(records, ViewQuery{Status: StatusAll, SortField: FieldFirstName, Direction: SortAsc})
	assert.Equal(t, []string{"u1", "u2", "u3", "u4"}, ids(asc))

	// descending reverses key order but not the order of equal keys
	desc := Project(records, ViewQuery{Status: StatusAll, SortField: FieldFirstName, Direction: SortDesc})
	assert.Equal(t, []string{"u4", "u1", "u2", "u3"}, ids(desc))
}

func TestProjectSubset(t *testing.T) {
	records := sampleRoster()
	q := ViewQuery{SearchTerm: "uni.edu", Status: StatusActive, SortField: FieldEmail, Direction: SortAsc}

	got := Project(records, q)
	byID := make(map[string]models.UserRecord, len(records))
	for _, r := range records {
		byID[r.UserID] = r
	}
	for _, r := range got {
		src, ok := byID[r.UserID]
		require.True(t, ok, "projected record not drawn from input")
		assert.Equal(t, src, r)
		assert.True(t, r.IsActive)
	}
}

func TestProjectIdempotent(t *testing.T) {
	records := sampleRoster()
	q := ViewQuery{SearchTerm: "a", Status: StatusActive, SortField: FieldFirstName, Direction: SortAsc}

	once := Project(records, q)
	twice := Project(once, q)
	assert.Equal(t, once, twice)

	// determinism against the same base records
	assert.Equal(t, once, Project(records, q))
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	records := sampleRoster()
	original := make([]models.UserRecord, len(records))
	copy(original, records)

	Project(records, ViewQuery{Status: StatusAll, SortField: FieldFirstName, Direction: SortDesc})

	assert.Equal(t, original, records)
}

func TestProjectMissingFieldsNeverMatch(t *testing.T) {
	records := Normalize([]models.UserRecord{
		{UserID: "u1", FirstName: "Ann", StatusRaw: "ACTIVE"},
		{UserID: "u2", StatusRaw: "ACTIVE"}, // every searchable field empty
	}, MissingInactive)

	got := Project(records, ViewQuery{SearchTerm: "ann", Status: StatusAll, SortField: FieldFirstName, Direction: SortAsc})
	assert.Equal(t, []string{"u1"}, ids(got))
}

func TestProjectSearchesRoleSpecificID(t *testing.T) {
	records := Normalize([]models.UserRecord{
		{UserID: "u1", FirstName: "Ann", LecturerID: "LEC-42", StatusRaw: "ACTIVE"},
		{UserID: "u2", FirstName: "Bob", LecturerID: "LEC-77", StatusRaw: "ACTIVE"},
	}, MissingActive)

	got := Project(records, ViewQuery{SearchTerm: "lec-42", Status: StatusAll, SortField: FieldFirstName, Direction: SortAsc})
	assert.Equal(t, []string{"u1"}, ids(got))
}

func TestProjectMissingSortKeySortsAsEmpty(t *testing.T) {
	records := Normalize([]models.UserRecord{
		{UserID: "u1", FirstName: "Ann", Email: "ann@uni.edu", StatusRaw: "ACTIVE"},
		{UserID: "u2", FirstName: "Bob", StatusRaw: "ACTIVE"},
	}, MissingInactive)

	got := Project(records, ViewQuery{Status: StatusAll, SortField: FieldEmail, Direction: SortAsc})
	// empty email sorts first ascending
	assert.Equal(t, []string{"u2", "u1"}, ids(got))
}

func TestProjectInactiveFilter(t *testing.T) {
	got := Project(sampleRoster(), ViewQuery{Status: StatusInactive, SortField: FieldFirstName, Direction: SortAsc})
	assert.Equal(t, []string{"u2"}, ids(got))
}
