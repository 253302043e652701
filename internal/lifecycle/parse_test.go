package lifecycle

import (
	"testing"

	"github.com/spec-kit/job-tracker/internal/domain"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		want    domain.Status
		wantErr bool
	}{
		{name: "absent", status: "", want: ""},
		{name: "blank", status: "   ", want: ""},
		{name: "known", status: "INTERVIEW", want: domain.StatusInterview},
		{name: "padded", status: " OFFER ", want: domain.StatusOffer},
		{name: "lower case", status: "offer", wantErr: true},
		{name: "unknown", status: "GHOSTED", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseInput(RawInput{Company: "Acme", Role: "Dev", Status: tt.status})
			if tt.wantErr {
				if !apperrors.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if in.Status != tt.want || in.Company != "Acme" || in.Role != "Dev" {
				t.Errorf("unexpected input %+v", in)
			}
		})
	}
}

func TestParsePatch(t *testing.T) {
	patch, err := ParsePatch(RawPatch{})
	if err != nil || patch.Status != nil {
		t.Fatalf("empty patch: %+v, %v", patch, err)
	}

	raw := "REJECTED"
	patch, err = ParsePatch(RawPatch{Status: &raw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patch.Status == nil || *patch.Status != domain.StatusRejected {
		t.Errorf("expected REJECTED, got %+v", patch.Status)
	}

	blank := ""
	if _, err := ParsePatch(RawPatch{Status: &blank}); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for blank status, got %v", err)
	}
}
