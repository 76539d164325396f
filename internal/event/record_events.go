package event

import (
	"context"
	"time"
)

// RecordEventPayload is the slim projection of a customer record that
// rides on the bus; consumers needing the full record fetch it by id.
type RecordEventPayload struct {
	RecordID     string    `json:"recordId"`
	FullName     string    `json:"fullName"`
	Status       string    `json:"status"`
	LoanAmount   float64   `json:"loanAmount"`
	NetDisbursed float64   `json:"netDisbursed"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RecordSavedEvent struct {
	Timestamp time.Time          `json:"timestamp"`
	Created   bool               `json:"created"`
	Payload   RecordEventPayload `json:"payload"`
}

type RecordDeletedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	RecordID  string    `json:"recordId"`
}

type StatusChangedEvent struct {
	Timestamp        time.Time  `json:"timestamp"`
	RecordID         string     `json:"recordId"`
	OldStatus        string     `json:"oldStatus"`
	NewStatus        string     `json:"newStatus"`
	ResolutionDate   *time.Time `json:"resolutionDate,omitempty"`
	ResolutionAmount float64    `json:"resolutionAmount"`
}

func (p *RabbitMQEventPublisher) PublishRecordSaved(ctx context.Context, event RecordSavedEvent) error {
	return p.publish(ctx, routingKeyRecordSaved, event)
}

func (p *RabbitMQEventPublisher) PublishRecordDeleted(ctx context.Context, event RecordDeletedEvent) error {
	return p.publish(ctx, routingKeyRecordDeleted, event)
}

func (p *RabbitMQEventPublisher) PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error {
	return p.publish(ctx, routingKeyStatusChanged, event)
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)
