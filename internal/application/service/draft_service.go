package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/sangkips/invoice-desk/internal/domain/enum"
	"github.com/sangkips/invoice-desk/internal/domain/repository"
	"github.com/sangkips/invoice-desk/pkg/apperror"
	"github.com/sangkips/invoice-desk/pkg/utils"
	"go.uber.org/zap"
)

// DraftOptions configures bill numbering and the clock.
type DraftOptions struct {
	BillPrefix string
	Now        func() time.Time
	NewID      func() string
}

// DraftService owns the operator's single in-memory draft. Every operation
// is serialized by one mutex, and edits are refused while a submission is
// in flight.
type DraftService struct {
	mu        sync.Mutex
	draft     *entity.Draft
	state     enum.SubmissionState
	catalog   repository.CatalogRepository
	staffRepo repository.StaffRepository
	opts      DraftOptions
	log       *zap.Logger
}

// NewDraftService creates the session with one fresh draft.
func NewDraftService(
	catalog repository.CatalogRepository,
	staffRepo repository.StaffRepository,
	opts DraftOptions,
	log *zap.Logger,
) *DraftService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = utils.NewRowID
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &DraftService{
		catalog:   catalog,
		staffRepo: staffRepo,
		opts:      opts,
		log:       log,
	}
	s.draft = s.freshDraft()
	return s
}

// DraftView is a point-in-time copy of the draft with its derived totals.
type DraftView struct {
	Draft  *entity.Draft        `json:"draft"`
	Totals entity.Totals        `json:"totals"`
	State  enum.SubmissionState `json:"state"`
}

// HeaderInput is a partial header edit. Nil fields are left as they are.
// An empty Date clears the date.
type HeaderInput struct {
	CustomerName *string
	MobileNumber *string
	Note         *string
	Date         *string
}

func (s *DraftService) freshDraft() *entity.Draft {
	return s.freshDraftAt(s.opts.Now())
}

func (s *DraftService) freshDraftAt(now time.Time) *entity.Draft {
	return entity.NewDraft(utils.GenerateBillNumber(s.opts.BillPrefix, now), now, s.opts.NewID)
}

func (s *DraftService) viewLocked() *DraftView {
	return &DraftView{
		Draft:  s.draft.Clone(),
		Totals: s.draft.Totals(),
		State:  s.state,
	}
}

// editable must be called with mu held.
func (s *DraftService) editable() error {
	if s.state == enum.SubmissionSubmitting {
		return apperror.ErrDraftFrozen
	}
	return nil
}

// Snapshot returns the current draft.
func (s *DraftService) Snapshot() *DraftView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// StartSession discards the current draft and starts a new one. A non-empty
// staffID pre-selects that staff member and locks the field. An id that is
// not in the directory is kept with an empty name, which fails validation.
func (s *DraftService) StartSession(ctx context.Context, staffID string) (*DraftView, error) {
	staffID = strings.TrimSpace(staffID)
	name := ""
	if staffID != "" {
		staff, err := s.staffRepo.FindByID(ctx, staffID)
		if err != nil {
			return nil, err
		}
		if staff != nil {
			name = staff.Name
		} else {
			s.log.Warn("session staff id not in directory", zap.String("staff_id", staffID))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return nil, err
	}
	d := s.freshDraft()
	if staffID != "" {
		d.CollectedByStaffID = staffID
		d.CollectedByStaffName = name
		d.StaffLocked = true
	}
	s.draft = d
	return s.viewLocked(), nil
}

// UpdateHeader edits customer, mobile, note and date.
func (s *DraftService) UpdateHeader(input HeaderInput) (*DraftView, error) {
	var date *time.Time
	if input.Date != nil && strings.TrimSpace(*input.Date) != "" {
		parsed, err := time.ParseInLocation(entity.DateLayout, strings.TrimSpace(*input.Date), s.opts.Now().Location())
		if err != nil {
			return nil, apperror.NewBadRequestError("Date must be in YYYY-MM-DD format")
		}
		date = &parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return nil, err
	}
	if input.CustomerName != nil {
		s.draft.CustomerName = *input.CustomerName
	}
	if input.MobileNumber != nil {
		s.draft.MobileNumber = *input.MobileNumber
	}
	if input.Note != nil {
		s.draft.Note = *input.Note
	}
	if input.Date != nil {
		s.draft.Date = date
	}
	return s.viewLocked(), nil
}

// SelectStaff sets the collecting staff member. An empty id clears it.
func (s *DraftService) SelectStaff(ctx context.Context, staffID string) (*DraftView, error) {
	staffID = strings.TrimSpace(staffID)
	name := ""
	if staffID != "" {
		staff, err := s.staffRepo.FindByID(ctx, staffID)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			return nil, apperror.NewNotFoundError("Staff")
		}
		name = staff.Name
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return nil, err
	}
	if s.draft.StaffLocked {
		return nil, apperror.ErrStaffLocked
	}
	s.draft.CollectedByStaffID = staffID
	s.draft.CollectedByStaffName = name
	return s.viewLocked(), nil
}

// AddItem appends an empty row.
func (s *DraftService) AddItem() (*entity.LineItem, *DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return nil, nil, err
	}
	item := s.draft.AddItem()
	return &item, s.viewLocked(), nil
}

// UpdateItem edits quantity, unit price, discount or name of one row.
func (s *DraftService) UpdateItem(id string, changes entity.LineItemChanges) (*entity.LineItem, *DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return nil, nil, err
	}
	item, ok := s.draft.UpdateItem(id, changes)
	if !ok {
		return nil, nil, apperror.ErrRowNotFound
	}
	return &item, s.viewLocked(), nil
}

// SelectItem resolves the picker selection against the catalog and applies it.
// A nil selection clears the row.
func (s *DraftService) SelectItem(ctx context.Context, id string, selection *string) (*entity.LineItem, *DraftView, error) {
	var match *entity.CatalogMatch
	if selection != nil {
		found, err := s.catalog.FindByName(ctx, *selection)
		if err != nil {
			return nil, nil, err
		}
		if found != nil {
			match = found.Match()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return nil, nil, err
	}
	item, ok := s.draft.ApplySelection(id, selection, match)
	if !ok {
		return nil, nil, apperror.ErrRowNotFound
	}
	return &item, s.viewLocked(), nil
}

// RemoveItem deletes one row.
func (s *DraftService) RemoveItem(id string) (*DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return nil, err
	}
	if !s.draft.RemoveItem(id) {
		return nil, apperror.ErrRowNotFound
	}
	return s.viewLocked(), nil
}

// resetLocked replaces the draft after a successful save. A session-locked
// staff member carries over to the new draft.
func (s *DraftService) resetLocked() {
	prev := s.draft
	now := s.opts.Now()
	d := s.freshDraftAt(now)
	// Two saves inside the same millisecond would otherwise reuse the number.
	if d.BillNumber == prev.BillNumber {
		d = s.freshDraftAt(now.Add(time.Millisecond))
	}
	if prev.StaffLocked {
		d.CollectedByStaffID = prev.CollectedByStaffID
		d.CollectedByStaffName = prev.CollectedByStaffName
		d.StaffLocked = true
	}
	s.draft = d
}

func (s *DraftService) transitionLocked(to enum.SubmissionState) {
	s.log.Debug("submission state",
		zap.String("from", s.state.String()),
		zap.String("to", to.String()),
		zap.String("bill_number", s.draft.BillNumber))
	s.state = to
}
