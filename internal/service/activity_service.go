package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/job-tracker/internal/events"
)

// ActivityService logs domain events and keeps a per-type tally.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu     sync.Mutex
	counts map[events.EventType]int
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		counts:     make(map[events.EventType]int),
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventApplicationCreated, a.handleApplicationCreated)
	a.dispatcher.Subscribe(events.EventApplicationUpdated, a.handleApplicationUpdated)
	a.dispatcher.Subscribe(events.EventApplicationStatusChanged, a.handleStatusChanged)
	a.dispatcher.Subscribe(events.EventApplicationDeleted, a.handleApplicationDeleted)
	a.dispatcher.Subscribe(events.EventAccountRegistered, a.handleAccountRegistered)
}

// Counts returns how many events of each type have been handled.
func (a *ActivityService) Counts() map[events.EventType]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[events.EventType]int, len(a.counts))
	for k, v := range a.counts {
		out[k] = v
	}
	return out
}

func (a *ActivityService) handleApplicationCreated(_ context.Context, event events.Event) error {
	a.record(event, "ApplicationCreated")
	return nil
}

func (a *ActivityService) handleApplicationUpdated(_ context.Context, event events.Event) error {
	a.record(event, "ApplicationUpdated")
	return nil
}

func (a *ActivityService) handleStatusChanged(_ context.Context, event events.Event) error {
	a.record(event, "ApplicationStatusChanged")
	return nil
}

func (a *ActivityService) handleApplicationDeleted(_ context.Context, event events.Event) error {
	a.record(event, "ApplicationDeleted")
	return nil
}

func (a *ActivityService) handleAccountRegistered(_ context.Context, event events.Event) error {
	a.record(event, "AccountRegistered")
	return nil
}

func (a *ActivityService) record(event events.Event, msg string) {
	a.mu.Lock()
	a.counts[event.Type]++
	a.mu.Unlock()

	a.logger.Info(msg,
		zap.String("event_id", event.ID),
		zap.String("owner_id", event.OwnerID),
		zap.String("application_id", event.ApplicationID),
		zap.Any("payload", event.Payload))
}
