// Package projection computes the filtered view of an owner's applications.
package projection

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/spec-kit/job-tracker/internal/domain"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// StatusFilter restricts a view to one status. The zero value is All.
type StatusFilter struct {
	status domain.Status
}

// All places no status restriction on a view.
var All = StatusFilter{}

// Only restricts a view to status.
func Only(status domain.Status) StatusFilter {
	return StatusFilter{status: status}
}

// ParseStatusFilter accepts "", "ALL" or any status value.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "ALL") {
		return All, nil
	}
	status, err := domain.ParseStatus(trimmed)
	if err != nil {
		return All, apperrors.NewValidationError("status filter must be ALL or a known status",
			map[string]any{"field": "status", "value": raw})
	}
	return Only(status), nil
}

// IsAll reports whether the filter is unrestricted.
func (f StatusFilter) IsAll() bool {
	return f.status == ""
}

// Status returns the restricting status and false for All.
func (f StatusFilter) Status() (domain.Status, bool) {
	return f.status, !f.IsAll()
}

func (f StatusFilter) String() string {
	if f.IsAll() {
		return "ALL"
	}
	return string(f.status)
}

// View is the projected subset alongside the size of the input.
type View struct {
	Items   []domain.Application
	Matched int
	Total   int
}

// Empty reports that the owner has no applications at all.
func (v View) Empty() bool {
	return v.Total == 0
}

// NoMatches reports that applications exist but none pass the filters.
func (v View) NoMatches() bool {
	return v.Total > 0 && v.Matched == 0
}

// Project keeps the records matching filter and searchText, in input order.
// Search is a case-insensitive substring match on company or role.
func Project(records []domain.Application, filter StatusFilter, searchText string) View {
	needle := fold(strings.TrimSpace(searchText))

	items := make([]domain.Application, 0, len(records))
	for i := range records {
		rec := records[i]
		if !filter.IsAll() && rec.Status != filter.status {
			continue
		}
		if needle != "" && !strings.Contains(fold(rec.Company), needle) && !strings.Contains(fold(rec.Role), needle) {
			continue
		}
		items = append(items, rec)
	}
	return View{Items: items, Matched: len(items), Total: len(records)}
}

// folder is stateless and safe for concurrent use.
var folder = cases.Fold()

func fold(s string) string {
	if s == "" {
		return s
	}
	return folder.String(s)
}
