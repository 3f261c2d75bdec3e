package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unihub/admin-console/internal/models"
	"github.com/unihub/admin-console/internal/roster"
)

func TestRosterTable(t *testing.T) {
	records := roster.Normalize([]models.UserRecord{
		{UserID: "u1", FirstName: "Ann", LastName: "Lee", Email: "ann@uni.edu", NationalID: "991V", Contact: "077", StatusRaw: "ACTIVE"},
		{UserID: "u2", FirstName: "Bob", StatusRaw: "INACTIVE"},
	}, roster.MissingInactive)

	table := RosterTable(models.RoleStudent, records, roster.Aggregates{Total: 2, Active: 1, Inactive: 1})

	assert.Contains(t, table.Title, "Student roster")
	assert.Contains(t, table.Title, "2 total, 1 active, 1 inactive")
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Active", table.Rows[0][len(table.Rows[0])-1])
	assert.Equal(t, "Inactive", table.Rows[1][len(table.Rows[1])-1])
}

func TestCSVRender(t *testing.T) {
	out, err := NewCSVExporter().Render(Table{
		Columns: []string{"User ID", "Email"},
		Rows:    [][]string{{"u1", "ann@uni.edu"}},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "User ID,Email", lines[0])
	assert.Equal(t, "u1,ann@uni.edu", lines[1])
}

func TestCSVRenderRowWidthMismatch(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"only one"}},
	})
	require.Error(t, err)
}

func TestCSVRenderRequiresColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	require.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(Table{
		Title:   "Student roster",
		Columns: []string{"User ID", "Email"},
		Rows:    [][]string{{"u1", "ann@uni.edu"}},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
