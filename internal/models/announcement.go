package models

import "strings"

// AnnouncementAudience defines which portal an announcement targets.
type AnnouncementAudience string

const (
	AudienceStudent AnnouncementAudience = "student"
	AudienceTeacher AnnouncementAudience = "teacher"
)

// AnnouncementRecord is an announcement as held by the console. Attachments
// are kept as an ordered list; the wire format joins them with commas.
type AnnouncementRecord struct {
	ID          string
	Topic       string
	Description string
	Date        string // ISO date, e.g. 2026-02-14
	Time        string // HH:MM:SS
	Attachments []string
	Audience    AnnouncementAudience
	CreatedAt   string // server-assigned, echoed back on update
}

// SplitAttachments parses the comma-joined attachment field into an ordered
// list, dropping empty segments.
func SplitAttachments(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinAttachments renders the attachment list back into the wire format.
func JoinAttachments(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, ",")
}

// NormalizeClock accepts HH:MM or HH:MM:SS and returns HH:MM:SS. Anything
// else is returned unchanged; the server owns final validation of its own
// formats.
func NormalizeClock(t string) string {
	trimmed := strings.TrimSpace(t)
	if trimmed == "" {
		return ""
	}
	if strings.Count(trimmed, ":") == 1 {
		return trimmed + ":00"
	}
	return trimmed
}
