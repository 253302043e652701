package dto

import "time"

// ApplicationRequest is the create payload. Status may be omitted.
type ApplicationRequest struct {
	Company       string `json:"company"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	JobURL        string `json:"jobUrl"`
	ResumeVersion string `json:"resumeVersion"`
	Notes         string `json:"notes"`
}

// ApplicationPatchRequest is the update payload. Omitted fields keep their
// stored value; id, ownerId and appliedAt are accepted and ignored.
type ApplicationPatchRequest struct {
	ID            *string    `json:"id"`
	OwnerID       *string    `json:"ownerId"`
	AppliedAt     *time.Time `json:"appliedAt"`
	Company       *string    `json:"company"`
	Role          *string    `json:"role"`
	Status        *string    `json:"status"`
	JobURL        *string    `json:"jobUrl"`
	ResumeVersion *string    `json:"resumeVersion"`
	Notes         *string    `json:"notes"`
}

// ApplicationResponse represents one record.
type ApplicationResponse struct {
	ID            string    `json:"id"`
	Company       string    `json:"company"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"statusLabel"`
	JobURL        string    `json:"jobUrl"`
	ResumeVersion string    `json:"resumeVersion"`
	Notes         string    `json:"notes"`
	AppliedAt     time.Time `json:"appliedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ViewResponse is the filtered listing.
type ViewResponse struct {
	Items   []ApplicationResponse `json:"items"`
	Matched int                   `json:"matched"`
	Total   int                   `json:"total"`
	Status  string                `json:"status"`
	Query   string                `json:"q"`
}

// AnalyticsResponse summarizes the owner's pipeline.
type AnalyticsResponse struct {
	Total         int            `json:"total"`
	Counts        map[string]int `json:"counts"`
	InterviewRate int            `json:"interviewRate"`
	OfferRate     int            `json:"offerRate"`
	Active        int            `json:"active"`
}
