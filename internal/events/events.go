// Package events publishes domain events about computed settlement plans.
package events

import (
	"time"

	"github.com/google/uuid"
)

// PlanComputedSubject is the subject a freshly computed plan is announced on.
const PlanComputedSubject = "settlement.plan.computed"

// Envelope wraps every published event.
type Envelope struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	GroupID   string    `json:"group_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEnvelope stamps data with a fresh id and the current time.
func NewEnvelope(eventType, groupID string, data any) Envelope {
	return Envelope{
		ID:        uuid.New().String(),
		Type:      eventType,
		GroupID:   groupID,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// PlanSettlement is one payment in a PlanComputed event.
type PlanSettlement struct {
	PayerID    string `json:"payer_id"`
	ReceiverID string `json:"receiver_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
}

// PlanComputed is the payload of PlanComputedSubject.
type PlanComputed struct {
	PlanID          string           `json:"plan_id"`
	Algorithm       string           `json:"algorithm"`
	WorkingCurrency string           `json:"working_currency"`
	Settlements     []PlanSettlement `json:"settlements"`
}
