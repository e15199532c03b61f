package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/linskybing/programhub/internal/domain/program"
	"github.com/linskybing/programhub/pkg/logger"
	"github.com/linskybing/programhub/pkg/metrics"
	"github.com/linskybing/programhub/pkg/notify"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Notifier receives lifecycle events. Delivery is fire-and-forget.
type Notifier interface {
	Publish(e notify.Event)
}

type nopNotifier struct{}

func (nopNotifier) Publish(notify.Event) {}

// Event types published after successful mutations.
const (
	EventCreated     = "application.created"
	EventUpdated     = "application.updated"
	EventSubmitted   = "application.submitted"
	EventUnderReview = "application.under_review"
	EventDecided     = "application.decided"
	EventWithdrawn   = "application.withdrawn"
	EventDeleted     = "application.deleted"
)

// LifecycleService enforces ownership and the status machine, and only
// touches a session store after the gateway call succeeded.
type LifecycleService struct {
	repo      program.Repository
	validator Validator
	notifier  Notifier
	now       func() time.Time
	log       *logrus.Entry
}

func NewLifecycleService(repo program.Repository, validator Validator, notifier Notifier) *LifecycleService {
	if validator == nil {
		validator = NewRequiredFieldsValidator(nil, nil)
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &LifecycleService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		now:       func() time.Time { return time.Now().UTC() },
		log:       logger.For("lifecycle"),
	}
}

// SetClock replaces the time source.
func (s *LifecycleService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *LifecycleService) CreateDraft(ctx context.Context, store *Store, ownerID uint, input program.CreateDraftDTO) (*program.Application, error) {
	if ownerID == 0 {
		return nil, s.fail("create", program.ErrForbidden)
	}
	name := strings.TrimSpace(input.ProgramName)
	if name == "" {
		return nil, s.fail("create", &program.ValidationError{Fields: map[string]string{"program_name": "is required"}})
	}
	form := input.FormData
	if len(form) == 0 {
		form = datatypes.JSON("{}")
	}

	app := &program.Application{
		OwnerID:     ownerID,
		ProgramName: name,
		Status:      program.StatusDraft,
		FormData:    form,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, s.fail("create", s.gatewayErr(err))
	}

	store.UpsertLocal(*app)
	s.done("create", app, EventCreated, "", nil)
	return app, nil
}

// UpdateDraft replaces the form payload (and optionally the program name)
// of a draft.
func (s *LifecycleService) UpdateDraft(ctx context.Context, store *Store, id string, ownerID uint, input program.UpdateDraftDTO) (*program.Application, error) {
	current, err := s.current(ctx, id, ownerID)
	if err != nil {
		return nil, s.fail("update", err)
	}
	if err := program.CheckEditable(current.Status); err != nil {
		return nil, s.fail("update", err)
	}

	patch := program.Patch{
		FormData:  input.FormData,
		UpdatedAt: s.now(),
	}
	if input.ProgramName != nil {
		name := strings.TrimSpace(*input.ProgramName)
		if name == "" {
			return nil, s.fail("update", &program.ValidationError{Fields: map[string]string{"program_name": "must not be blank"}})
		}
		patch.ProgramName = &name
	}

	updated, err := s.repo.Update(ctx, id, ownerID, program.StatusDraft, patch, nil)
	if err != nil {
		return nil, s.fail("update", s.gatewayErr(err))
	}

	store.UpsertLocal(*updated)
	s.done("update", updated, EventUpdated, "", nil)
	return updated, nil
}

func (s *LifecycleService) Submit(ctx context.Context, store *Store, id string, ownerID uint) (*program.Application, error) {
	current, err := s.current(ctx, id, ownerID)
	if err != nil {
		return nil, s.fail("submit", err)
	}
	if err := program.CheckTransition(current.Status, program.StatusSubmitted); err != nil {
		return nil, s.fail("submit", err)
	}
	if err := s.validator.Validate(current.ProgramName, current.FormData); err != nil {
		return nil, s.fail("submit", err)
	}

	now := s.now()
	to := program.StatusSubmitted
	patch := program.Patch{Status: &to, SubmittedAt: &now, UpdatedAt: now}
	change := &program.StatusChange{From: current.Status, To: to, ActorID: ownerID, CreatedAt: now}

	updated, err := s.repo.Update(ctx, id, ownerID, current.Status, patch, change)
	if err != nil {
		return nil, s.fail("submit", s.gatewayErr(err))
	}

	store.UpsertLocal(*updated)
	s.done("submit", updated, EventSubmitted, current.Status, nil)
	return updated, nil
}

func (s *LifecycleService) Withdraw(ctx context.Context, store *Store, id string, ownerID uint) (*program.Application, error) {
	current, err := s.current(ctx, id, ownerID)
	if err != nil {
		return nil, s.fail("withdraw", err)
	}
	if err := program.CheckTransition(current.Status, program.StatusWithdrawn); err != nil {
		return nil, s.fail("withdraw", err)
	}

	now := s.now()
	to := program.StatusWithdrawn
	patch := program.Patch{Status: &to, UpdatedAt: now}
	change := &program.StatusChange{From: current.Status, To: to, ActorID: ownerID, CreatedAt: now}

	updated, err := s.repo.Update(ctx, id, ownerID, current.Status, patch, change)
	if err != nil {
		return nil, s.fail("withdraw", s.gatewayErr(err))
	}

	store.UpsertLocal(*updated)
	s.done("withdraw", updated, EventWithdrawn, current.Status, nil)
	return updated, nil
}

// DeleteDraft hard-deletes a draft. Submitted applications must be withdrawn instead.
func (s *LifecycleService) DeleteDraft(ctx context.Context, store *Store, id string, ownerID uint) error {
	current, err := s.current(ctx, id, ownerID)
	if err != nil {
		return s.fail("delete", err)
	}
	if err := program.CheckDelete(current.Status); err != nil {
		return s.fail("delete", err)
	}
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return s.fail("delete", s.gatewayErr(err))
	}

	store.RemoveLocal(id)
	s.done("delete", current, EventDeleted, "", nil)
	return nil
}

// MarkUnderReview is an administrative move from submitted to under_review.
func (s *LifecycleService) MarkUnderReview(ctx context.Context, id string, actorID uint) (*program.Application, error) {
	return s.adminTransition(ctx, "review", id, actorID, program.StatusUnderReview, nil, EventUnderReview)
}

// Decide is the administrative accept/reject of an application under review.
func (s *LifecycleService) Decide(ctx context.Context, id string, actorID uint, decision program.Status, note string) (*program.Application, error) {
	if decision != program.StatusAccepted && decision != program.StatusRejected {
		return nil, s.fail("decide", &program.ValidationError{Fields: map[string]string{"status": "must be accepted or rejected"}})
	}
	note = strings.TrimSpace(note)
	return s.adminTransition(ctx, "decide", id, actorID, decision, &note, EventDecided)
}

func (s *LifecycleService) adminTransition(ctx context.Context, op, id string, actorID uint, to program.Status, note *string, event string) (*program.Application, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(op, s.gatewayErr(err))
	}
	if err := program.CheckTransition(current.Status, to); err != nil {
		return nil, s.fail(op, err)
	}

	now := s.now()
	patch := program.Patch{Status: &to, DecisionNote: note, UpdatedAt: now}
	change := program.StatusChange{From: current.Status, To: to, ActorID: actorID, CreatedAt: now}
	if note != nil {
		change.Note = *note
	}

	updated, err := s.repo.AdminUpdate(ctx, id, current.Status, patch, change)
	if err != nil {
		return nil, s.fail(op, s.gatewayErr(err))
	}
	s.done(op, updated, event, current.Status, logrus.Fields{"actor_id": actorID})
	return updated, nil
}

// ListForOwner reloads the session from the gateway and returns it.
func (s *LifecycleService) ListForOwner(ctx context.Context, store *Store, ownerID uint) ([]program.Application, error) {
	if err := store.LoadAll(ctx, ownerID); err != nil {
		metrics.RecordGatewayFailure(string(program.OpLoad))
		return nil, s.fail("list", err)
	}
	return store.Snapshot(), nil
}

// History returns the status changes of an application the caller owns.
func (s *LifecycleService) History(ctx context.Context, id string, ownerID uint) ([]program.StatusChange, error) {
	if _, err := s.current(ctx, id, ownerID); err != nil {
		return nil, s.fail("history", err)
	}
	changes, err := s.repo.History(ctx, id)
	if err != nil {
		metrics.RecordGatewayFailure(string(program.OpLoad))
		return nil, s.fail("history", &program.GatewayError{Op: program.OpLoad, Err: err})
	}
	return changes, nil
}

// current reads the stored row and checks ownership before anything else,
// so a non-owner learns nothing about the row's status.
func (s *LifecycleService) current(ctx context.Context, id string, ownerID uint) (*program.Application, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.gatewayErr(err)
	}
	if !app.OwnedBy(ownerID) {
		return nil, program.ErrForbidden
	}
	return app, nil
}

func (s *LifecycleService) gatewayErr(err error) error {
	if isDomainErr(err) {
		return err
	}
	metrics.RecordGatewayFailure(string(program.OpMutation))
	return &program.GatewayError{Op: program.OpMutation, Err: err}
}

func (s *LifecycleService) fail(op string, err error) error {
	metrics.RecordOperation(op, errorClass(err))
	entry := s.log.WithField("op", op).WithError(err)
	if program.IsGatewayError(err) {
		entry.Error("application operation failed")
	} else {
		entry.Debug("application operation rejected")
	}
	return err
}

func (s *LifecycleService) done(op string, app *program.Application, event string, from program.Status, extra logrus.Fields) {
	metrics.RecordOperation(op, "ok")
	if from != "" {
		metrics.RecordTransition(string(from), string(app.Status))
	}
	s.log.WithFields(logrus.Fields{
		"op":             op,
		"application_id": app.ID,
		"owner_id":       app.OwnerID,
		"status":         app.Status,
	}).WithFields(extra).Info("application " + op)

	s.notifier.Publish(notify.Event{
		Type:          event,
		ApplicationID: app.ID,
		OwnerID:       app.OwnerID,
		ProgramName:   app.ProgramName,
		Status:        string(app.Status),
		At:            s.now(),
	})
}

func isDomainErr(err error) bool {
	return errors.Is(err, program.ErrNotFound) ||
		errors.Is(err, program.ErrForbidden) ||
		errors.Is(err, program.ErrIllegalTransition) ||
		errors.Is(err, program.ErrValidation)
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, program.ErrNotFound):
		return "not_found"
	case errors.Is(err, program.ErrForbidden):
		return "forbidden"
	case errors.Is(err, program.ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, program.ErrValidation):
		return "validation"
	default:
		return "gateway"
	}
}
