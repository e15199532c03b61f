package program

import (
	"time"

	"gorm.io/datatypes"
)

// Status is the lifecycle state of an Application.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

// Deleted is the pseudo target reported when a hard delete is refused.
// It is never stored.
const Deleted Status = "deleted"

// StatusAll disables status filtering in queries.
const StatusAll = "all"

// Statuses lists every stored status in lifecycle order.
var Statuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusUnderReview,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

// Valid reports whether s is one of the six stored statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// Bucket maps a status to its presentation group.
func (s Status) Bucket() Bucket {
	switch s {
	case StatusDraft:
		return BucketDrafts
	case StatusSubmitted, StatusUnderReview:
		return BucketActive
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return BucketCompleted
	default:
		return ""
	}
}

// Bucket is one of the three presentation groupings.
type Bucket string

const (
	BucketDrafts    Bucket = "drafts"
	BucketActive    Bucket = "active"
	BucketCompleted Bucket = "completed"
)

// Application is one user's candidacy for one program.
type Application struct {
	ID           string         `json:"id" gorm:"primaryKey;type:varchar(36);column:id"`
	OwnerID      uint           `json:"owner_id" gorm:"not null;index;column:owner_id"`
	ProgramName  string         `json:"program_name" gorm:"size:200;not null;column:program_name"`
	Status       Status         `json:"status" gorm:"type:varchar(20);not null;default:'draft';index;column:status"`
	FormData     datatypes.JSON `json:"form_data" gorm:"type:jsonb;column:form_data" swaggertype:"object"`
	DecisionNote string         `json:"decision_note,omitempty" gorm:"type:text;column:decision_note"`
	CreatedAt    time.Time      `json:"created_at" gorm:"not null;index;column:created_at"`
	SubmittedAt  *time.Time     `json:"submitted_at" gorm:"column:submitted_at"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"not null;column:updated_at"`
}

// TableName specifies the database table name
func (Application) TableName() string {
	return "program_applications"
}

// OwnedBy reports whether uid is the application's owner.
func (a *Application) OwnedBy(uid uint) bool {
	return a.OwnerID == uid
}

// StatusChange records one status transition of an application.
type StatusChange struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	ApplicationID string    `json:"application_id" gorm:"type:varchar(36);not null;index;column:application_id"`
	From          Status    `json:"from" gorm:"type:varchar(20);column:from_status"`
	To            Status    `json:"to" gorm:"type:varchar(20);not null;column:to_status"`
	ActorID       uint      `json:"actor_id" gorm:"not null;column:actor_id"`
	Note          string    `json:"note,omitempty" gorm:"type:text;column:note"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the database table name
func (StatusChange) TableName() string {
	return "program_application_status_history"
}
