package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/job-tracker/internal/analytics"
	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/events"
	"github.com/spec-kit/job-tracker/internal/lifecycle"
	"github.com/spec-kit/job-tracker/internal/projection"
	"github.com/spec-kit/job-tracker/internal/repository"
	"github.com/spec-kit/job-tracker/internal/session"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// ApplicationService coordinates application workflows for the session
// attached to each call's context.
type ApplicationService struct {
	apps       repository.ApplicationRepository
	policy     *lifecycle.Policy
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ApplicationDependencies bundles collaborators for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	Policy          *lifecycle.Policy
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	policy := deps.Policy
	if policy == nil {
		policy = lifecycle.NewPolicy(nil)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		apps:       deps.ApplicationRepo,
		policy:     policy,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Create records a new application for the current owner.
func (s *ApplicationService) Create(ctx context.Context, in lifecycle.Input) (*domain.Application, error) {
	owner, err := currentOwner(ctx)
	if err != nil {
		return nil, err
	}

	app, err := s.policy.PrepareCreate(owner, in)
	if err != nil {
		return nil, err
	}
	if err := s.apps.Insert(ctx, app); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationCreated,
		OwnerID:       owner,
		ApplicationID: app.ID,
		Payload: events.ApplicationCreatedPayload{
			Company: app.Company,
			Role:    app.Role,
			Status:  app.Status,
		},
	})
	return app, nil
}

// Get returns one application of the current owner.
func (s *ApplicationService) Get(ctx context.Context, id string) (*domain.Application, error) {
	owner, err := currentOwner(ctx)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.GetOne(ctx, owner, id)
	if err != nil {
		return nil, mapRepoErr(err, id)
	}
	// Foreign records are reported exactly like missing ones.
	if err := session.FromContext(ctx).Authorize(app.OwnerID); err != nil {
		return nil, apperrors.NewNotFound("application", map[string]any{"id": id})
	}
	return app, nil
}

// Update applies patch to an application of the current owner.
func (s *ApplicationService) Update(ctx context.Context, id string, patch lifecycle.Patch) (*domain.Application, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := s.policy.PrepareUpdate(existing, patch)
	if err != nil {
		return nil, err
	}
	if err := s.apps.Replace(ctx, next); err != nil {
		return nil, mapRepoErr(err, id)
	}

	if fields := changedFields(existing, next); len(fields) > 0 {
		s.publishEvent(ctx, events.Event{
			Type:          events.EventApplicationUpdated,
			OwnerID:       next.OwnerID,
			ApplicationID: next.ID,
			Payload:       events.ApplicationUpdatedPayload{Fields: fields},
		})
	}
	if existing.Status != next.Status {
		s.publishEvent(ctx, events.Event{
			Type:          events.EventApplicationStatusChanged,
			OwnerID:       next.OwnerID,
			ApplicationID: next.ID,
			Payload: events.ApplicationStatusChangedPayload{
				OldStatus: existing.Status,
				NewStatus: next.Status,
			},
		})
	}
	return next, nil
}

// Delete removes an application of the current owner.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.apps.Delete(ctx, existing.OwnerID, id); err != nil {
		return mapRepoErr(err, id)
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationDeleted,
		OwnerID:       existing.OwnerID,
		ApplicationID: existing.ID,
		Payload: events.ApplicationDeletedPayload{
			Company: existing.Company,
			Role:    existing.Role,
		},
	})
	return nil
}

// View refetches the owner's collection and projects it.
func (s *ApplicationService) View(ctx context.Context, filter projection.StatusFilter, searchText string) (projection.View, error) {
	records, err := s.snapshot(ctx)
	if err != nil {
		return projection.View{}, err
	}
	return projection.Project(records, filter, searchText), nil
}

// Analytics refetches the owner's collection and summarizes it.
func (s *ApplicationService) Analytics(ctx context.Context) (analytics.Summary, error) {
	records, err := s.snapshot(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(records)
}

func (s *ApplicationService) snapshot(ctx context.Context) ([]domain.Application, error) {
	owner, err := currentOwner(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.apps.ListAll(ctx, owner)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	for i := range records {
		if !records[i].OwnedBy(owner) {
			return nil, apperrors.NewInternalConsistency("storage returned a foreign record",
				map[string]any{"id": records[i].ID})
		}
	}
	return records, nil
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now().UTC()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("application_id", event.ApplicationID),
			zap.Error(err))
	}
}

func currentOwner(ctx context.Context) (string, error) {
	identity, err := session.FromContext(ctx).CurrentOwner()
	if err != nil {
		return "", err
	}
	return identity.ID, nil
}

func mapRepoErr(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("application", map[string]any{"id": id})
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return apperrors.NewStorageFailure(err)
}

func changedFields(before, after *domain.Application) []string {
	var fields []string
	if before.Company != after.Company {
		fields = append(fields, "company")
	}
	if before.Role != after.Role {
		fields = append(fields, "role")
	}
	if before.Status != after.Status {
		fields = append(fields, "status")
	}
	if before.JobURL != after.JobURL {
		fields = append(fields, "jobUrl")
	}
	if before.ResumeVersion != after.ResumeVersion {
		fields = append(fields, "resumeVersion")
	}
	if before.Notes != after.Notes {
		fields = append(fields, "notes")
	}
	return fields
}
