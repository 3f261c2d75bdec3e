package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAttachments(t *testing.T) {
	assert.Nil(t, SplitAttachments(""))
	assert.Nil(t, SplitAttachments("   "))
	assert.Equal(t, []string{"a.pdf"}, SplitAttachments("a.pdf"))
	assert.Equal(t, []string{"a.pdf", "b.png"}, SplitAttachments("a.pdf, b.png"))
	// empty segments are dropped, order kept
	assert.Equal(t, []string{"a.pdf", "b.png"}, SplitAttachments(",a.pdf,,b.png,"))
}

func TestJoinAttachments(t *testing.T) {
	assert.Equal(t, "", JoinAttachments(nil))
	assert.Equal(t, "a.pdf,b.png", JoinAttachments([]string{"a.pdf", " b.png ", ""}))
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "09:30:00", NormalizeClock("09:30"))
	assert.Equal(t, "09:30:15", NormalizeClock("09:30:15"))
	assert.Equal(t, "", NormalizeClock("  "))
}

func TestActiveStatus(t *testing.T) {
	active, present := ActiveStatus("ACTIVE")
	assert.True(t, active)
	assert.True(t, present)

	active, present = ActiveStatus("active")
	assert.True(t, active)
	assert.True(t, present)

	active, present = ActiveStatus("Suspended")
	assert.False(t, active)
	assert.True(t, present)

	_, present = ActiveStatus("")
	assert.False(t, present)
}

func TestRoleSpecificID(t *testing.T) {
	assert.Equal(t, "LEC-1", UserRecord{LecturerID: "LEC-1"}.RoleSpecificID())
	assert.Equal(t, "STU-9", UserRecord{StudentID: "STU-9"}.RoleSpecificID())
	assert.Equal(t, "", UserRecord{}.RoleSpecificID())
}
