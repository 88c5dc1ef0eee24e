// Package submissionlog keeps an append-only audit trail of order
// submissions: one row per submit with its outcome and failed operations.
package submissionlog

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type Entry struct {
	ID           uint      `gorm:"primaryKey"                  json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;uniqueIndex"       json:"submission_id"`
	OrderID      int       `gorm:"index;not null"              json:"order_id"`
	Mode         Mode      `gorm:"size:16;not null"            json:"mode"`
	Status       Status    `gorm:"size:16;not null"            json:"status"`
	ItemsDeleted int       `gorm:"not null;default:0"          json:"items_deleted"`
	ItemsCreated int       `gorm:"not null;default:0"          json:"items_created"`
	Failures     string    `gorm:"type:text;not null;default:'[]'" json:"failures"`
	Payload      string    `gorm:"type:text"                   json:"payload,omitempty"`
	CreatedAt    time.Time `gorm:"index"                       json:"created_at"`
}

func (Entry) TableName() string { return "order_submissions" }
