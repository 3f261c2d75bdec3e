package service

import (
	"context"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unihub/admin-console/internal/models"
	appErrors "github.com/unihub/admin-console/pkg/errors"
)

type fakeAnnouncementGateway struct {
	mu         sync.Mutex
	records    []models.AnnouncementRecord
	fetchCount int
	created    []models.AnnouncementRecord
	updated    []models.AnnouncementRecord
	deleted    []string
	createErr  error
	nextID     int
}

func (f *fakeAnnouncementGateway) FetchAnnouncements(ctx context.Context) ([]models.AnnouncementRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCount++
	out := make([]models.AnnouncementRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeAnnouncementGateway) CreateAnnouncement(ctx context.Context, rec models.AnnouncementRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	rec.ID = "a-generated"
	rec.CreatedAt = "2026-08-29T10:00:00Z"
	f.created = append(f.created, rec)
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeAnnouncementGateway) UpdateAnnouncement(ctx context.Context, rec models.AnnouncementRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, rec)
	for i, existing := range f.records {
		if existing.ID == rec.ID {
			f.records[i] = rec
		}
	}
	return nil
}

func (f *fakeAnnouncementGateway) DeleteAnnouncement(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	kept := f.records[:0]
	for _, existing := range f.records {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	f.records = kept
	return nil
}

func validAnnouncementRequest() AnnouncementRequest {
	return AnnouncementRequest{
		Topic:       "Exam schedule",
		Description: "Semester one finals",
		Date:        "2026-09-01",
		Time:        "09:30",
		Audience:    "student",
		Attachments: []string{"schedule.pdf"},
	}
}

func TestAnnouncementServiceCreate(t *testing.T) {
	gw := &fakeAnnouncementGateway{}
	svc := NewAnnouncementService(gw, validator.New(), zap.NewNop())

	require.NoError(t, svc.Create(context.Background(), validAnnouncementRequest()))

	require.Len(t, gw.created, 1)
	assert.Equal(t, "09:30:00", gw.created[0].Time)
	assert.Equal(t, 1, gw.fetchCount)
	assert.Len(t, svc.Records(), 1)
	assert.Equal(t, "Announcement created successfully", svc.Success())
}

func TestAnnouncementServiceCreateValidation(t *testing.T) {
	gw := &fakeAnnouncementGateway{}
	svc := NewAnnouncementService(gw, validator.New(), zap.NewNop())

	req := validAnnouncementRequest()
	req.Audience = "everyone"
	err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
	assert.Empty(t, gw.created)
	assert.Zero(t, gw.fetchCount)
}

func TestAnnouncementServiceUpdateKeepsCreatedAt(t *testing.T) {
	gw := &fakeAnnouncementGateway{records: []models.AnnouncementRecord{{
		ID:        "a1",
		Topic:     "Old topic",
		CreatedAt: "2026-01-01T08:00:00Z",
	}}}
	svc := NewAnnouncementService(gw, validator.New(), zap.NewNop())
	require.NoError(t, svc.Refresh(context.Background()))

	require.NoError(t, svc.Update(context.Background(), "a1", validAnnouncementRequest()))

	require.Len(t, gw.updated, 1)
	assert.Equal(t, "a1", gw.updated[0].ID)
	assert.Equal(t, "2026-01-01T08:00:00Z", gw.updated[0].CreatedAt)
	assert.Equal(t, "Exam schedule", gw.updated[0].Topic)
}

func TestAnnouncementServiceDelete(t *testing.T) {
	gw := &fakeAnnouncementGateway{records: []models.AnnouncementRecord{{ID: "a1"}, {ID: "a2"}}}
	svc := NewAnnouncementService(gw, validator.New(), zap.NewNop())
	require.NoError(t, svc.Refresh(context.Background()))

	require.NoError(t, svc.Delete(context.Background(), "a1"))

	assert.Equal(t, []string{"a1"}, gw.deleted)
	require.Len(t, svc.Records(), 1)
	assert.Equal(t, "a2", svc.Records()[0].ID)
	assert.Equal(t, "Announcement deleted successfully", svc.Success())
}

func TestAnnouncementServiceCreateErrorMessage(t *testing.T) {
	gw := &fakeAnnouncementGateway{createErr: appErrors.Clone(appErrors.ErrServer, "attachment too large")}
	svc := NewAnnouncementService(gw, validator.New(), zap.NewNop())

	err := svc.Create(context.Background(), validAnnouncementRequest())
	require.Error(t, err)
	assert.Equal(t, "attachment too large", svc.Error())
	assert.Zero(t, gw.fetchCount)
}
