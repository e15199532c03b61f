package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/programhub/internal/domain/program"
	"gorm.io/gorm"
)

// ApplicationRepo matches the domain gateway contract.
type ApplicationRepo interface {
	program.Repository
}

type DBApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *DBApplicationRepo {
	return &DBApplicationRepo{
		db: db,
	}
}

func (r *DBApplicationRepo) List(ctx context.Context, ownerID uint) ([]program.Application, error) {
	var apps []program.Application
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&apps).Error
	return apps, err
}

func (r *DBApplicationRepo) FindByID(ctx context.Context, id string) (*program.Application, error) {
	return findApplication(r.db.WithContext(ctx), id)
}

// Create assigns ID and timestamps, then stores the row with its first
// history entry.
func (r *DBApplicationRepo) Create(ctx context.Context, app *program.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = program.StatusDraft
	}

	return r.inTx(ctx, func(tx *DBApplicationRepo) error {
		if err := tx.db.Create(app).Error; err != nil {
			return err
		}
		return tx.record(app.ID, &program.StatusChange{
			To:        app.Status,
			ActorID:   app.OwnerID,
			CreatedAt: now,
		})
	})
}

func (r *DBApplicationRepo) Update(ctx context.Context, id string, ownerID uint, expected program.Status, patch program.Patch, change *program.StatusChange) (*program.Application, error) {
	var updated *program.Application
	err := r.inTx(ctx, func(tx *DBApplicationRepo) error {
		res := tx.db.Model(&program.Application{}).
			Where("id = ? AND owner_id = ? AND status = ?", id, ownerID, expected).
			Updates(patchColumns(patch))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return explainMiss(tx.db, id, &ownerID, patch.Status)
		}
		if change != nil {
			if err := tx.record(id, change); err != nil {
				return err
			}
		}
		app, err := findApplication(tx.db, id)
		if err != nil {
			return err
		}
		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete hard-deletes a draft together with its history.
func (r *DBApplicationRepo) Delete(ctx context.Context, id string, ownerID uint) error {
	return r.inTx(ctx, func(tx *DBApplicationRepo) error {
		res := tx.db.Where("id = ? AND owner_id = ? AND status = ?", id, ownerID, program.StatusDraft).
			Delete(&program.Application{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			deleted := program.Deleted
			return explainMiss(tx.db, id, &ownerID, &deleted)
		}
		return tx.db.Where("application_id = ?", id).Delete(&program.StatusChange{}).Error
	})
}

// AdminUpdate applies an administrative transition; ownership is not checked.
func (r *DBApplicationRepo) AdminUpdate(ctx context.Context, id string, expected program.Status, patch program.Patch, change program.StatusChange) (*program.Application, error) {
	var updated *program.Application
	err := r.inTx(ctx, func(tx *DBApplicationRepo) error {
		res := tx.db.Model(&program.Application{}).
			Where("id = ? AND status = ?", id, expected).
			Updates(patchColumns(patch))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return explainMiss(tx.db, id, nil, patch.Status)
		}
		if err := tx.record(id, &change); err != nil {
			return err
		}
		app, err := findApplication(tx.db, id)
		if err != nil {
			return err
		}
		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *DBApplicationRepo) History(ctx context.Context, id string) ([]program.StatusChange, error) {
	var changes []program.StatusChange
	err := r.db.WithContext(ctx).
		Where("application_id = ?", id).
		Order("id asc").
		Find(&changes).Error
	return changes, err
}

func (r *DBApplicationRepo) WithTx(tx *gorm.DB) *DBApplicationRepo {
	if tx == nil {
		return r
	}
	return &DBApplicationRepo{
		db: tx,
	}
}

// inTx runs fn against a copy of the repo bound to one transaction.
func (r *DBApplicationRepo) inTx(ctx context.Context, fn func(tx *DBApplicationRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// record appends a history row inside the caller's transaction.
func (r *DBApplicationRepo) record(id string, change *program.StatusChange) error {
	change.ApplicationID = id
	return r.db.Create(change).Error
}

func findApplication(db *gorm.DB, id string) (*program.Application, error) {
	var app program.Application
	if err := db.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, program.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// explainMiss turns a conditional write that matched no row into the
// domain error describing why. A nil target means an in-place edit.
func explainMiss(db *gorm.DB, id string, ownerID *uint, target *program.Status) error {
	current, err := findApplication(db, id)
	if err != nil {
		return err
	}
	if ownerID != nil && !current.OwnedBy(*ownerID) {
		return program.ErrForbidden
	}
	if target == nil {
		return &program.TransitionError{From: current.Status, To: current.Status}
	}
	return &program.TransitionError{From: current.Status, To: *target}
}

func patchColumns(patch program.Patch) map[string]any {
	cols := map[string]any{"updated_at": patch.UpdatedAt}
	if patch.ProgramName != nil {
		cols["program_name"] = *patch.ProgramName
	}
	if patch.FormData != nil {
		cols["form_data"] = patch.FormData
	}
	if patch.Status != nil {
		cols["status"] = *patch.Status
	}
	if patch.SubmittedAt != nil {
		cols["submitted_at"] = *patch.SubmittedAt
	}
	if patch.DecisionNote != nil {
		cols["decision_note"] = *patch.DecisionNote
	}
	return cols
}
