package domain

import "context"

// ChangeEvent announces a committed write on a customer or contact.
type ChangeEvent struct {
	Event      string `json:"event"`
	ID         uint   `json:"id"`
	CustomerID uint   `json:"customerId,omitempty"`
	At         int64  `json:"at"`
}

const (
	EventCustomerCreated = "customer.created"
	EventCustomerUpdated = "customer.updated"
	EventCustomerDeleted = "customer.deleted"
	EventContactCreated  = "contact.created"
	EventContactUpdated  = "contact.updated"
	EventContactDeleted  = "contact.deleted"
)

type EventPublisher interface {
	Publish(ctx context.Context, e ChangeEvent) error
}
