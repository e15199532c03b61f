package application_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/linskybing/programhub/internal/application"
	"github.com/linskybing/programhub/internal/domain/program"
	"github.com/linskybing/programhub/internal/repository/mock"
)

// memBackend drives a MockApplicationRepo with the same conditional-write
// rules the gorm repository applies.
type memBackend struct {
	mu        sync.Mutex
	rows      map[string]program.Application
	history   map[string][]program.StatusChange
	clock     time.Time
	failWrite error
	failLoad  error
}

func (b *memBackend) tick() time.Time {
	b.clock = b.clock.Add(time.Second)
	return b.clock
}

func (b *memBackend) get(id string) (program.Application, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	app, ok := b.rows[id]
	return app, ok
}

func (b *memBackend) miss(id string, ownerID *uint, target *program.Status) error {
	cur, ok := b.rows[id]
	if !ok {
		return program.ErrNotFound
	}
	if ownerID != nil && cur.OwnerID != *ownerID {
		return program.ErrForbidden
	}
	if target == nil {
		return &program.TransitionError{From: cur.Status, To: cur.Status}
	}
	return &program.TransitionError{From: cur.Status, To: *target}
}

func applyPatch(app *program.Application, p program.Patch) {
	if p.ProgramName != nil {
		app.ProgramName = *p.ProgramName
	}
	if p.FormData != nil {
		app.FormData = p.FormData
	}
	if p.Status != nil {
		app.Status = *p.Status
	}
	if p.SubmittedAt != nil {
		t := *p.SubmittedAt
		app.SubmittedAt = &t
	}
	if p.DecisionNote != nil {
		app.DecisionNote = *p.DecisionNote
	}
	app.UpdatedAt = p.UpdatedAt
}

type harness struct {
	svc      *application.LifecycleService
	sessions *application.Sessions
	repo     *mock.MockApplicationRepo
	backend  *memBackend
	notes    *recordingNotifier
}

func newHarness(t *testing.T, validator application.Validator) *harness {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	repo := mock.NewMockApplicationRepo(ctrl)
	b := &memBackend{
		rows:    make(map[string]program.Application),
		history: make(map[string][]program.StatusChange),
		clock:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ownerID uint) ([]program.Application, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.failLoad != nil {
				return nil, b.failLoad
			}
			var out []program.Application
			for _, app := range b.rows {
				if app.OwnerID == ownerID {
					out = append(out, app)
				}
			}
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
			return out, nil
		}).AnyTimes()

	repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) (*program.Application, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			app, ok := b.rows[id]
			if !ok {
				return nil, program.ErrNotFound
			}
			return &app, nil
		}).AnyTimes()

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, app *program.Application) error {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.failWrite != nil {
				return b.failWrite
			}
			app.ID = uuid.NewString()
			app.CreatedAt = b.tick()
			app.UpdatedAt = app.CreatedAt
			b.rows[app.ID] = *app
			b.history[app.ID] = append(b.history[app.ID], program.StatusChange{
				ApplicationID: app.ID, To: app.Status, ActorID: app.OwnerID, CreatedAt: app.CreatedAt,
			})
			return nil
		}).AnyTimes()

	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, ownerID uint, expected program.Status, p program.Patch, change *program.StatusChange) (*program.Application, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.failWrite != nil {
				return nil, b.failWrite
			}
			app, ok := b.rows[id]
			if !ok || app.OwnerID != ownerID || app.Status != expected {
				return nil, b.miss(id, &ownerID, p.Status)
			}
			applyPatch(&app, p)
			b.rows[id] = app
			if change != nil {
				change.ApplicationID = id
				b.history[id] = append(b.history[id], *change)
			}
			return &app, nil
		}).AnyTimes()

	repo.EXPECT().AdminUpdate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, expected program.Status, p program.Patch, change program.StatusChange) (*program.Application, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.failWrite != nil {
				return nil, b.failWrite
			}
			app, ok := b.rows[id]
			if !ok || app.Status != expected {
				return nil, b.miss(id, nil, p.Status)
			}
			applyPatch(&app, p)
			b.rows[id] = app
			change.ApplicationID = id
			b.history[id] = append(b.history[id], change)
			return &app, nil
		}).AnyTimes()

	repo.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, ownerID uint) error {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.failWrite != nil {
				return b.failWrite
			}
			app, ok := b.rows[id]
			if !ok || app.OwnerID != ownerID || app.Status != program.StatusDraft {
				deleted := program.Deleted
				return b.miss(id, &ownerID, &deleted)
			}
			delete(b.rows, id)
			delete(b.history, id)
			return nil
		}).AnyTimes()

	repo.EXPECT().History(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) ([]program.StatusChange, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			return append([]program.StatusChange(nil), b.history[id]...), nil
		}).AnyTimes()

	notes := &recordingNotifier{}
	svc := application.NewLifecycleService(repo, validator, notes)
	svc.SetClock(func() time.Time {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.tick()
	})

	return &harness{
		svc:      svc,
		sessions: application.NewSessions(repo),
		repo:     repo,
		backend:  b,
		notes:    notes,
	}
}
