package lifecycle

import (
	"strings"

	"github.com/spec-kit/job-tracker/internal/domain"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// RawInput is an Input whose status is still free text.
type RawInput struct {
	Company       string
	Role          string
	Status        string
	JobURL        string
	ResumeVersion string
	Notes         string
}

// RawPatch is a Patch whose status is still free text.
type RawPatch struct {
	Company       *string
	Role          *string
	Status        *string
	JobURL        *string
	ResumeVersion *string
	Notes         *string
}

// ParseInput types the status of raw. A blank status stays absent so
// PrepareCreate applies the default.
func ParseInput(raw RawInput) (Input, error) {
	in := Input{
		Company:       raw.Company,
		Role:          raw.Role,
		JobURL:        raw.JobURL,
		ResumeVersion: raw.ResumeVersion,
		Notes:         raw.Notes,
	}
	if strings.TrimSpace(raw.Status) == "" {
		return in, nil
	}
	status, err := parseStatus(raw.Status)
	if err != nil {
		return Input{}, err
	}
	in.Status = status
	return in, nil
}

// ParsePatch types the status of raw. A present but blank status is rejected.
func ParsePatch(raw RawPatch) (Patch, error) {
	patch := Patch{
		Company:       raw.Company,
		Role:          raw.Role,
		JobURL:        raw.JobURL,
		ResumeVersion: raw.ResumeVersion,
		Notes:         raw.Notes,
	}
	if raw.Status != nil {
		status, err := parseStatus(*raw.Status)
		if err != nil {
			return Patch{}, err
		}
		patch.Status = &status
	}
	return patch, nil
}

func parseStatus(raw string) (domain.Status, error) {
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return "", apperrors.NewValidationError("status must be one of APPLIED, PHONE_SCREEN, INTERVIEW, OFFER, REJECTED",
			map[string]any{"field": "status", "value": raw})
	}
	return status, nil
}
