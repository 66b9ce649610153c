package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a service order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

// orderStatuses is the closed set of values an order may hold. There is
// deliberately no transition table: any member status may follow any other
// (see DESIGN.md), the validator only rejects values outside the set.
var orderStatuses = map[OrderStatus]struct{}{
	StatusPending:    {},
	StatusProcessing: {},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// IsValid reports whether s is a member of the order status set.
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// Admin actions on an order. Actions other than these carry no notes
// requirement.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
	ActionUpdate = "update"
)

// RequiresNotes reports whether the given admin action demands a non-empty
// notes string before any write may happen.
func RequiresNotes(action string) bool {
	switch action {
	case ActionAccept, ActionReject, ActionUpdate:
		return true
	}
	return false
}

var ErrInvalidStatus = errors.New("invalid order status")
var ErrNotesRequired = errors.New("admin notes are required for this action")
var ErrOrderNotFound = errors.New("order not found")
var ErrForbidden = errors.New("access forbidden")

// Order is a customer's request for an SEO service, tracked through a
// status lifecycle. Orders are created by end users and only ever mutated
// through the admin transition workflow; they are never deleted.
type Order struct {
	ID              string      `json:"id" bson:"_id,omitempty"`
	UserID          string      `json:"user_id" bson:"user_id"`
	ServiceType     string      `json:"service_type" bson:"service_type"`
	Description     string      `json:"description,omitempty" bson:"description,omitempty"`
	Status          OrderStatus `json:"status" bson:"status"`
	AdminNotes      string      `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	AdminResponseAt *time.Time  `json:"admin_response_at,omitempty" bson:"admin_response_at,omitempty"`
	EmailSent       bool        `json:"email_sent" bson:"email_sent"`
	EmailSentAt     *time.Time  `json:"email_sent_at,omitempty" bson:"email_sent_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
}
