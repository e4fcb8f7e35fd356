package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses. The lifecycle is a flat five-value label: any status may
// follow any other, there is no transition graph.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
	StatusShipped    = "Shipped"
	StatusCancelled  = "Cancelled"
)

// OrderStatuses lists every status an order may hold, in lifecycle order.
var OrderStatuses = []string{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusShipped,
	StatusCancelled,
}

// IsValidStatus reports whether s is one of the five order statuses.
func IsValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order represents a print job submitted through the marketplace
type Order struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"not null;index" json:"email"` // stored trimmed and lowercased
	Material     string    `gorm:"not null" json:"material"`    // filament selection, free text
	Quantity     int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Deadline     string    `gorm:"not null" json:"deadline"` // requested completion date, YYYY-MM-DD
	FileURL      string    `json:"file_url"`                 // public URL of the uploaded design, "" when none
	Status       string    `gorm:"not null;default:'Pending'" json:"status"`
	Manufacturer *string   `gorm:"index" json:"manufacturer,omitempty"` // nil means unassigned, never ""
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns the opaque order id. The id and created_at are
// write-once; nothing in the API updates them after insert.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
