package export

import (
	"fmt"

	"github.com/unihub/admin-console/internal/models"
	"github.com/unihub/admin-console/internal/roster"
)

var rosterColumns = []string{"User ID", "First Name", "Last Name", "Email", "NIC", "Contact", "DOB", "Role ID", "Status"}

// RosterTable builds an export table from a projected roster, in display
// order, with the aggregate tallies folded into the title.
func RosterTable(role models.Role, records []models.UserRecord, agg roster.Aggregates) Table {
	t := Table{
		Title:   fmt.Sprintf("%s roster - %d total, %d active, %d inactive", roleLabel(role), agg.Total, agg.Active, agg.Inactive),
		Columns: rosterColumns,
		Rows:    make([][]string, 0, len(records)),
	}
	for _, rec := range records {
		status := "Inactive"
		if rec.IsActive {
			status = "Active"
		}
		t.Rows = append(t.Rows, []string{
			rec.UserID,
			rec.FirstName,
			rec.LastName,
			rec.Email,
			rec.NationalID,
			rec.Contact,
			rec.DateOfBirth,
			rec.RoleSpecificID(),
			status,
		})
	}
	return t
}

func roleLabel(role models.Role) string {
	if role == models.RoleLecturer {
		return "Lecturer"
	}
	return "Student"
}
