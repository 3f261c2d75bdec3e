package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unihub/admin-console/internal/models"
	appErrors "github.com/unihub/admin-console/pkg/errors"
)

type announcementGateway interface {
	FetchAnnouncements(ctx context.Context) ([]models.AnnouncementRecord, error)
	CreateAnnouncement(ctx context.Context, rec models.AnnouncementRecord) error
	UpdateAnnouncement(ctx context.Context, rec models.AnnouncementRecord) error
	DeleteAnnouncement(ctx context.Context, id string) error
}

// AnnouncementRequest holds the announcement form fields.
type AnnouncementRequest struct {
	Topic       string   `json:"topic" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Audience    string   `json:"type" validate:"required,oneof=student teacher"`
	Attachments []string `json:"attachments"`
}

// AnnouncementService drives the announcement screen with the same contract
// as the rosters: wholesale re-fetch after every mutation, serialized
// actions, transient messages.
type AnnouncementService struct {
	gw        announcementGateway
	validator *validator.Validate
	logger    *zap.Logger

	successTTL time.Duration

	mu           sync.Mutex
	records      []models.AnnouncementRecord
	loading      bool
	actionBusy   bool
	errMsg       string
	successMsg   string
	successTimer *time.Timer
}

// AnnouncementOption customises the service.
type AnnouncementOption func(*AnnouncementService)

// WithAnnouncementSuccessTTL overrides the transient message lifetime.
func WithAnnouncementSuccessTTL(ttl time.Duration) AnnouncementOption {
	return func(s *AnnouncementService) { s.successTTL = ttl }
}

// NewAnnouncementService constructs the announcement screen.
func NewAnnouncementService(gw announcementGateway, validate *validator.Validate, logger *zap.Logger, opts ...AnnouncementOption) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AnnouncementService{gw: gw, validator: validate, logger: logger, successTTL: 2 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh re-fetches the announcement list.
func (s *AnnouncementService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	records, err := s.gw.FetchAnnouncements(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = appErrors.Display(err)
		return err
	}
	s.errMsg = ""
	s.records = records
	return nil
}

// Records returns a copy of the fetched announcements in server order.
func (s *AnnouncementService) Records() []models.AnnouncementRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AnnouncementRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Create validates and publishes a new announcement, then re-fetches.
func (s *AnnouncementService) Create(ctx context.Context, req AnnouncementRequest) error {
	rec, err := s.buildRecord(req)
	if err != nil {
		return err
	}
	return s.mutate(ctx, "Announcement created successfully", func(ctx context.Context) error {
		return s.gw.CreateAnnouncement(ctx, rec)
	})
}

// Update validates and replaces an existing announcement. The stored
// CreatedAt is echoed back so the server keeps the original timestamp.
func (s *AnnouncementService) Update(ctx context.Context, id string, req AnnouncementRequest) error {
	rec, err := s.buildRecord(req)
	if err != nil {
		return err
	}
	rec.ID = id
	s.mu.Lock()
	for _, existing := range s.records {
		if existing.ID == id {
			rec.CreatedAt = existing.CreatedAt
			break
		}
	}
	s.mu.Unlock()
	return s.mutate(ctx, "Announcement updated successfully", func(ctx context.Context) error {
		return s.gw.UpdateAnnouncement(ctx, rec)
	})
}

// Delete removes an announcement, then re-fetches.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, "Announcement deleted successfully", func(ctx context.Context) error {
		return s.gw.DeleteAnnouncement(ctx, id)
	})
}

func (s *AnnouncementService) buildRecord(req AnnouncementRequest) (models.AnnouncementRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		verr := appErrors.Wrap(err, appErrors.ErrValidation.Code, "please fill in all required fields")
		s.mu.Lock()
		s.errMsg = verr.Message
		s.mu.Unlock()
		return models.AnnouncementRecord{}, verr
	}
	return models.AnnouncementRecord{
		Topic:       req.Topic,
		Description: req.Description,
		Date:        req.Date,
		Time:        models.NormalizeClock(req.Time),
		Attachments: req.Attachments,
		Audience:    models.AnnouncementAudience(req.Audience),
	}, nil
}

func (s *AnnouncementService) mutate(ctx context.Context, successMsg string, fn func(context.Context) error) error {
	s.mu.Lock()
	if s.actionBusy {
		s.mu.Unlock()
		return appErrors.ErrBusy
	}
	s.actionBusy = true
	s.mu.Unlock()

	err := fn(ctx)

	s.mu.Lock()
	s.actionBusy = false
	if err != nil {
		s.errMsg = appErrors.Display(err)
		s.mu.Unlock()
		return err
	}
	s.errMsg = ""
	s.mu.Unlock()

	if refreshErr := s.Refresh(ctx); refreshErr != nil {
		return refreshErr
	}

	s.mu.Lock()
	s.successMsg = successMsg
	if s.successTimer != nil {
		s.successTimer.Stop()
	}
	s.successTimer = time.AfterFunc(s.successTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.successMsg = ""
	})
	s.mu.Unlock()
	return nil
}

// Error returns the last display error.
func (s *AnnouncementService) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Success returns the transient success message.
func (s *AnnouncementService) Success() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.successMsg
}

// Loading reports whether a fetch is in flight.
func (s *AnnouncementService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
