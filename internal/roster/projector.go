package roster

import (
	"sort"
	"strings"

	"github.com/unihub/admin-console/internal/models"
)

// Project applies the view query to a roster and returns the visible rows in
// display order. It is pure: the input slice is never reordered or otherwise
// mutated, and the same inputs always produce the same output.
func Project(records []models.UserRecord, q ViewQuery) []models.UserRecord {
	matched := make([]models.UserRecord, 0, len(records))
	for _, rec := range records {
		if !matchesStatus(rec, q.Status) {
			continue
		}
		if !matchesSearch(rec, q.SearchTerm) {
			continue
		}
		matched = append(matched, rec)
	}

	sortRecords(matched, q.SortField, q.Direction)
	return matched
}

func matchesStatus(rec models.UserRecord, f StatusFilter) bool {
	switch f {
	case StatusActive:
		return rec.IsActive
	case StatusInactive:
		return !rec.IsActive
	default:
		return true
	}
}

// matchesSearch checks the fixed attribute set for a case-insensitive
// substring match. Absent fields are empty strings and never match a
// non-empty term.
func matchesSearch(rec models.UserRecord, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	haystacks := []string{
		rec.FirstName,
		rec.LastName,
		rec.Email,
		rec.NationalID,
		rec.Contact,
		rec.RoleSpecificID(),
	}
	for _, h := range haystacks {
		if h == "" {
			continue
		}
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// sortRecords orders rows by the selected field. Sorting is stable in both
// directions: rows with equal keys keep their relative fetch order, so a
// descending sort reverses key order without reversing ties.
func sortRecords(records []models.UserRecord, field string, dir SortDirection) {
	sort.SliceStable(records, func(i, j int) bool {
		a := sortKey(records[i], field)
		b := sortKey(records[j], field)
		if dir == SortDesc {
			return b < a
		}
		return a < b
	})
}

// sortKey extracts the comparison key for a record. String values compare
// lower-cased; unknown or missing fields compare as empty strings.
func sortKey(rec models.UserRecord, field string) string {
	var v string
	switch field {
	case FieldFirstName:
		v = rec.FirstName
	case FieldLastName:
		v = rec.LastName
	case FieldEmail:
		v = rec.Email
	case FieldNationalID:
		v = rec.NationalID
	case FieldContact:
		v = rec.Contact
	case FieldDateOfBirth:
		v = rec.DateOfBirth
	case FieldRoleID:
		v = rec.RoleSpecificID()
	}
	return strings.ToLower(v)
}
