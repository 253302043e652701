package events

import (
	"time"

	"github.com/spec-kit/job-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationCreated       EventType = "application_created"
	EventApplicationUpdated       EventType = "application_updated"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventApplicationDeleted       EventType = "application_deleted"
	EventAccountRegistered        EventType = "account_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	OwnerID       string      `json:"owner_id"`
	ApplicationID string      `json:"application_id,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload,omitempty"`
}

// ApplicationCreatedPayload payload.
type ApplicationCreatedPayload struct {
	Company string        `json:"company"`
	Role    string        `json:"role"`
	Status  domain.Status `json:"status"`
}

// ApplicationUpdatedPayload lists the fields an update changed.
type ApplicationUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
}

// ApplicationDeletedPayload payload.
type ApplicationDeletedPayload struct {
	Company string `json:"company"`
	Role    string `json:"role"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Email string `json:"email"`
}
