package worker

import (
	"github.com/spec-kit/job-tracker/internal/service"
)

// StartActivityWorker registers activity handlers.
func StartActivityWorker(activity *service.ActivityService) {
	if activity == nil {
		return
	}
	activity.RegisterHandlers()
}
