package gateway

import (
	"context"
	"net/http"

	"github.com/unihub/admin-console/internal/models"
)

// announcementWire is the announcement shape on the wire: attachments are a
// comma-joined string and time is HH:MM:SS.
type announcementWire struct {
	ID          string `json:"announcement_id,omitempty"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Attachments string `json:"attachments"`
	Type        string `json:"type"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func toWire(rec models.AnnouncementRecord) announcementWire {
	return announcementWire{
		ID:          rec.ID,
		Topic:       rec.Topic,
		Description: rec.Description,
		Date:        rec.Date,
		Time:        models.NormalizeClock(rec.Time),
		Attachments: models.JoinAttachments(rec.Attachments),
		Type:        string(rec.Audience),
		CreatedAt:   rec.CreatedAt,
	}
}

func fromWire(w announcementWire) models.AnnouncementRecord {
	return models.AnnouncementRecord{
		ID:          w.ID,
		Topic:       w.Topic,
		Description: w.Description,
		Date:        w.Date,
		Time:        models.NormalizeClock(w.Time),
		Attachments: models.SplitAttachments(w.Attachments),
		Audience:    models.AnnouncementAudience(w.Type),
		CreatedAt:   w.CreatedAt,
	}
}

// FetchAnnouncements lists every announcement.
func (c *Client) FetchAnnouncements(ctx context.Context) ([]models.AnnouncementRecord, error) {
	raw, err := c.do(ctx, "fetch_announcements", http.MethodGet, "/get_announcements", nil)
	if err != nil {
		return nil, err
	}
	var wires []announcementWire
	if err := decode(raw, &wires); err != nil {
		return nil, err
	}
	records := make([]models.AnnouncementRecord, len(wires))
	for i, w := range wires {
		records[i] = fromWire(w)
	}
	return records, nil
}

// CreateAnnouncement publishes a new announcement.
func (c *Client) CreateAnnouncement(ctx context.Context, rec models.AnnouncementRecord) error {
	_, err := c.do(ctx, "create_announcement", http.MethodPost, "/create_announcement", toWire(rec))
	return err
}

// UpdateAnnouncement replaces an existing announcement; CreatedAt is echoed
// back unchanged.
func (c *Client) UpdateAnnouncement(ctx context.Context, rec models.AnnouncementRecord) error {
	_, err := c.do(ctx, "update_announcement", http.MethodPut, "/update_announcement", toWire(rec))
	return err
}

// DeleteAnnouncement removes an announcement by id.
func (c *Client) DeleteAnnouncement(ctx context.Context, id string) error {
	body := map[string]string{"announcement_id": id}
	_, err := c.do(ctx, "delete_announcement", http.MethodDelete, "/delete_announcement", body)
	return err
}
