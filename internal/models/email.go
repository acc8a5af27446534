// internal/models/email.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Email logs one send attempt. Rows are immutable after creation except
// RepliedAt, which an out-of-band reply detector sets.
type Email struct {
	BaseModel
	StoreID   uuid.UUID   `json:"store_id" gorm:"type:uuid;not null;index"`
	OrderID   uuid.UUID   `json:"order_id" gorm:"type:uuid;not null;index"`
	Recipient string      `json:"to" gorm:"column:recipient;size:255;not null"`
	Customer  string      `json:"customer" gorm:"size:255"`
	Subject   string      `json:"subject" gorm:"size:512"`
	Body      string      `json:"body" gorm:"type:text"`
	Type      EmailType   `json:"type" gorm:"type:varchar(20);index"`
	Status    EmailStatus `json:"status" gorm:"type:varchar(10);index"`
	SentAt    *time.Time  `json:"sent_at,omitempty"`
	RepliedAt *time.Time  `json:"replied_at,omitempty"`
}
