package domain

import "time"

// Application is one tracked job application.
type Application struct {
	ID            string
	OwnerID       string
	Company       string
	Role          string
	Status        Status
	JobURL        string
	ResumeVersion string
	Notes         string
	AppliedAt     time.Time
	UpdatedAt     time.Time
}

// OwnedBy reports whether the application belongs to ownerID.
func (a *Application) OwnedBy(ownerID string) bool {
	return a != nil && ownerID != "" && a.OwnerID == ownerID
}
