package program

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// Patch lists the columns a mutation may change. Nil fields are left as-is.
type Patch struct {
	ProgramName  *string
	FormData     datatypes.JSON
	Status       *Status
	SubmittedAt  *time.Time
	DecisionNote *string
	UpdatedAt    time.Time
}

// Repository is the persistence gateway for applications.
//
// Update, Delete and AdminUpdate only touch a row whose status still equals
// expected; a row that moved in the meantime yields a *TransitionError.
type Repository interface {
	List(ctx context.Context, ownerID uint) ([]Application, error)
	FindByID(ctx context.Context, id string) (*Application, error)
	Create(ctx context.Context, app *Application) error
	Update(ctx context.Context, id string, ownerID uint, expected Status, patch Patch, change *StatusChange) (*Application, error)
	Delete(ctx context.Context, id string, ownerID uint) error
	AdminUpdate(ctx context.Context, id string, expected Status, patch Patch, change StatusChange) (*Application, error)
	History(ctx context.Context, id string) ([]StatusChange, error)
}
