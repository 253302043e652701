// Package analytics reduces an owner's applications into pipeline metrics.
//
// Every function is pure over the slice it is given. The slice is never
// modified, and nothing is cached between calls.
package analytics

import (
	"math"

	"github.com/spec-kit/job-tracker/internal/domain"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// Counts maps every status to the number of applications in it.
type Counts map[domain.Status]int

// Summary is the analytics payload for one owner.
type Summary struct {
	Total         int
	Counts        Counts
	InterviewRate int
	OfferRate     int
	Active        int
}

// CountsByStatus always returns all five statuses, zero-filled.
func CountsByStatus(records []domain.Application) Counts {
	counts := make(Counts, len(domain.AllStatuses()))
	for _, status := range domain.AllStatuses() {
		counts[status] = 0
	}
	for i := range records {
		if _, ok := counts[records[i].Status]; ok {
			counts[records[i].Status]++
		}
	}
	return counts
}

// Total counts every record regardless of status.
func Total(records []domain.Application) int {
	return len(records)
}

// InterviewRate is the percentage of applications that reached an interview or offer.
func InterviewRate(records []domain.Application) int {
	counts := CountsByStatus(records)
	return percent(counts[domain.StatusInterview]+counts[domain.StatusOffer], Total(records))
}

// OfferRate is the percentage of applications that produced an offer.
func OfferRate(records []domain.Application) int {
	counts := CountsByStatus(records)
	return percent(counts[domain.StatusOffer], Total(records))
}

// ActiveCount is the number of applications still in flight.
func ActiveCount(records []domain.Application) (int, error) {
	counts := CountsByStatus(records)
	return active(Total(records), counts)
}

// Summarize computes all metrics from a single pass over records. It fails
// when a record carries a status outside the enumeration.
func Summarize(records []domain.Application) (Summary, error) {
	for i := range records {
		if !records[i].Status.Valid() {
			return Summary{}, apperrors.NewInternalConsistency("application has unknown status",
				map[string]any{"application_id": records[i].ID, "status": string(records[i].Status)})
		}
	}

	counts := CountsByStatus(records)
	total := Total(records)
	activeCount, err := active(total, counts)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Total:         total,
		Counts:        counts,
		InterviewRate: percent(counts[domain.StatusInterview]+counts[domain.StatusOffer], total),
		OfferRate:     percent(counts[domain.StatusOffer], total),
		Active:        activeCount,
	}, nil
}

func active(total int, counts Counts) (int, error) {
	n := total - counts[domain.StatusRejected] - counts[domain.StatusOffer]
	if n < 0 {
		return 0, apperrors.NewInternalConsistency("active application count is negative",
			map[string]any{"total": total, "active": n})
	}
	return n, nil
}

// percent rounds half away from zero; zero when total is zero.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
