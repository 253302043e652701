// Package lifecycle normalizes and validates application fields before they
// reach storage.
package lifecycle

import (
	"strings"
	"time"

	"github.com/spec-kit/job-tracker/internal/domain"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// TransitionsUnconstrained records the pipeline policy: any status may move to
// any other status, including backwards (OFFER -> APPLIED). Hiring processes
// are not linear and no ordering between statuses is enforced anywhere.
const TransitionsUnconstrained = true

// Input carries the fields of a new application. An empty Status means the
// caller did not supply one.
type Input struct {
	Company       string
	Role          string
	Status        domain.Status
	JobURL        string
	ResumeVersion string
	Notes         string
}

// Patch describes an update. Nil fields are left unchanged. ID, OwnerID and
// AppliedAt are accepted so callers can round-trip a full record, but they are
// always ignored.
type Patch struct {
	ID            *string
	OwnerID       *string
	AppliedAt     *time.Time
	Company       *string
	Role          *string
	Status        *domain.Status
	JobURL        *string
	ResumeVersion *string
	Notes         *string
}

// Policy applies the create and update rules using its clock.
type Policy struct {
	now func() time.Time
}

// NewPolicy builds a policy. A nil clock falls back to time.Now.
func NewPolicy(now func() time.Time) *Policy {
	if now == nil {
		now = time.Now
	}
	return &Policy{now: now}
}

// PrepareCreate returns a fully populated record for ownerID. Storage assigns the ID.
func (p *Policy) PrepareCreate(ownerID string, in Input) (*domain.Application, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.NewUnauthorized("session required")
	}

	status := in.Status
	if status == "" {
		status = domain.StatusApplied
	}

	app := &domain.Application{
		OwnerID:       ownerID,
		Company:       strings.TrimSpace(in.Company),
		Role:          strings.TrimSpace(in.Role),
		Status:        status,
		JobURL:        strings.TrimSpace(in.JobURL),
		ResumeVersion: strings.TrimSpace(in.ResumeVersion),
		Notes:         strings.TrimSpace(in.Notes),
	}
	if err := validate(app); err != nil {
		return nil, err
	}

	now := p.now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	return app, nil
}

// PrepareUpdate returns a copy of existing with patch applied. existing is not modified.
func (p *Policy) PrepareUpdate(existing *domain.Application, patch Patch) (*domain.Application, error) {
	if existing == nil {
		return nil, apperrors.NewNotFound("application", nil)
	}

	next := *existing
	if patch.Company != nil {
		next.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Role != nil {
		next.Role = strings.TrimSpace(*patch.Role)
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.JobURL != nil {
		next.JobURL = strings.TrimSpace(*patch.JobURL)
	}
	if patch.ResumeVersion != nil {
		next.ResumeVersion = strings.TrimSpace(*patch.ResumeVersion)
	}
	if patch.Notes != nil {
		next.Notes = strings.TrimSpace(*patch.Notes)
	}

	next.ID = existing.ID
	next.OwnerID = existing.OwnerID
	next.AppliedAt = existing.AppliedAt

	if err := validate(&next); err != nil {
		return nil, err
	}

	next.UpdatedAt = latest(p.now().UTC(), existing.UpdatedAt, existing.AppliedAt)
	return &next, nil
}

func validate(app *domain.Application) error {
	if app.Company == "" {
		return apperrors.NewValidationError("company is required", map[string]any{"field": "company"})
	}
	if app.Role == "" {
		return apperrors.NewValidationError("role is required", map[string]any{"field": "role"})
	}
	if !app.Status.Valid() {
		return apperrors.NewValidationError("status must be one of APPLIED, PHONE_SCREEN, INTERVIEW, OFFER, REJECTED",
			map[string]any{"field": "status", "value": string(app.Status)})
	}
	return nil
}

func latest(candidates ...time.Time) time.Time {
	var out time.Time
	for _, c := range candidates {
		if c.After(out) {
			out = c
		}
	}
	return out
}
