package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unihub/admin-console/internal/gateway"
	"github.com/unihub/admin-console/internal/models"
	"github.com/unihub/admin-console/internal/roster"
	appErrors "github.com/unihub/admin-console/pkg/errors"
)

type rosterGateway interface {
	FetchRoster(ctx context.Context, role models.Role) ([]models.UserRecord, error)
	CreateUser(ctx context.Context, payload gateway.CreateUserPayload) (*models.UserRecord, error)
	SetActiveState(ctx context.Context, userID string, active bool) error
}

// CreateUserRequest holds the new-account form fields.
type CreateUserRequest struct {
	FirstName   string `json:"f_name" validate:"required"`
	LastName    string `json:"l_name"`
	Email       string `json:"email" validate:"required,email"`
	NationalID  string `json:"NIC" validate:"required"`
	Address     string `json:"address"`
	Contact     string `json:"contact" validate:"required"`
	DateOfBirth string `json:"DOB" validate:"required"`
	Role        string `json:"role" validate:"required,oneof=STUDENT LECTURER"`
}

// RosterService drives one roster screen: it owns the fetched collection and
// the operator's view query, serializes mutating actions, and re-fetches the
// whole roster after every successful mutation.
type RosterService struct {
	role      models.Role
	gw        rosterGateway
	validator *validator.Validate
	logger    *zap.Logger

	successTTL time.Duration

	mu           sync.Mutex
	store        *roster.Store
	query        roster.ViewQuery
	loading      bool
	actionBusy   bool
	fetchGen     uint64
	errMsg       string
	successMsg   string
	successTimer *time.Timer
}

// RosterOption customises the service.
type RosterOption func(*RosterService)

// WithSuccessTTL overrides how long transient success messages linger.
func WithSuccessTTL(ttl time.Duration) RosterOption {
	return func(s *RosterService) { s.successTTL = ttl }
}

// NewRosterService constructs a screen for the given role. Lecturer rosters
// default missing statuses to active, student rosters to inactive; the
// asymmetry mirrors upstream behaviour and is awaiting product clarification.
func NewRosterService(role models.Role, gw rosterGateway, validate *validator.Validate, logger *zap.Logger, opts ...RosterOption) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := roster.MissingInactive
	if role == models.RoleLecturer {
		policy = roster.MissingActive
	}
	s := &RosterService{
		role:       role,
		gw:         gw,
		validator:  validate,
		logger:     logger,
		successTTL: 2 * time.Second,
		store:      roster.NewStore(policy),
		query:      roster.NewViewQuery(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh re-fetches the whole roster and replaces the store. Overlapping
// refreshes are not cancelled; the last response to resolve wins and stale
// ones are discarded.
func (s *RosterService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.loading = true
	s.mu.Unlock()

	records, err := s.gw.FetchRoster(ctx, s.role)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		s.logger.Debug("discarding stale roster response",
			zap.String("role", string(s.role)),
			zap.Uint64("generation", gen))
		return nil
	}
	s.loading = false
	if err != nil {
		s.errMsg = appErrors.Display(err)
		return err
	}
	s.errMsg = ""
	s.store.Replace(records)
	return nil
}

// Visible projects the roster through the current view query.
func (s *RosterService) Visible() []models.UserRecord {
	s.mu.Lock()
	records := s.store.Records()
	query := s.query
	s.mu.Unlock()
	return roster.Project(records, query)
}

// Aggregates returns the summary-card tallies.
func (s *RosterService) Aggregates() roster.Aggregates {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Aggregates()
}

// Search updates the free-text filter.
func (s *RosterService) Search(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.SetSearchTerm(term)
}

// FilterStatus updates the status filter.
func (s *RosterService) FilterStatus(f roster.StatusFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.SetStatus(f)
}

// SortBy selects the sort column, toggling direction on re-selection.
func (s *RosterService) SortBy(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.SetSortField(field)
}

// SetSort assigns the sort column and direction outright. The CLI uses this:
// its flags name an absolute ordering, not a header click.
func (s *RosterService) SetSort(field string, dir roster.SortDirection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.SetSort(field, dir)
}

// Query returns the current view query.
func (s *RosterService) Query() roster.ViewQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// CreateUser validates the form, submits it, and re-fetches the roster on
// success.
func (s *RosterService) CreateUser(ctx context.Context, req CreateUserRequest) error {
	if err := s.validator.Struct(req); err != nil {
		verr := appErrors.Wrap(err, appErrors.ErrValidation.Code, "please fill in all required fields")
		s.setError(verr)
		return verr
	}
	return s.mutate(ctx, "User created successfully", func(ctx context.Context) error {
		_, err := s.gw.CreateUser(ctx, gateway.CreateUserPayload{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			NationalID:  req.NationalID,
			Address:     req.Address,
			Contact:     req.Contact,
			DateOfBirth: req.DateOfBirth,
			Role:        strings.ToUpper(req.Role),
		})
		return err
	})
}

// SetActive activates or deactivates one account, then re-fetches.
func (s *RosterService) SetActive(ctx context.Context, userID string, active bool) error {
	msg := "User deactivated successfully"
	if active {
		msg = "User reactivated successfully"
	}
	return s.mutate(ctx, msg, func(ctx context.Context) error {
		return s.gw.SetActiveState(ctx, userID, active)
	})
}

// mutate serializes mutating actions behind a single busy flag, mirroring the
// disabled controls in the UI: a second action while one is in flight is
// rejected rather than queued.
func (s *RosterService) mutate(ctx context.Context, successMsg string, fn func(context.Context) error) error {
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
	s.setSuccess(successMsg)
	return nil
}

func (s *RosterService) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = appErrors.Display(err)
}

// setSuccess records a transient success message, auto-cleared after the TTL.
func (s *RosterService) setSuccess(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successMsg = msg
	if s.successTimer != nil {
		s.successTimer.Stop()
	}
	s.successTimer = time.AfterFunc(s.successTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.successMsg = ""
	})
}

// Error returns the last display error, empty when the previous action
// succeeded.
func (s *RosterService) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Success returns the transient success message.
func (s *RosterService) Success() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.successMsg
}

// Loading reports whether a roster fetch is in flight.
func (s *RosterService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Busy reports whether a mutating action is in flight.
func (s *RosterService) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actionBusy
}

// Role returns the roster's role.
func (s *RosterService) Role() models.Role {
	return s.role
}
