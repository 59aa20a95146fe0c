package announcement

import (
	"context"
	"log/slog"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/auth"
	"github.com/o1-spec/techservices-portal/internal/core/events"
)

type Service struct {
	repo   Repository
	policy *auth.Policy
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, policy *auth.Policy, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		bus:    bus,
		logger: logger,
	}
}

// List is open to every authenticated principal, scoped to their company.
func (s *Service) List(actor *auth.Identity) ([]*View, error) {
	if err := s.policy.Authorize(actor, auth.ResourceAnnouncements, auth.ActionRead); err != nil {
		return nil, err
	}
	views, err := s.repo.ListByCompany(actor.CompanyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list announcements", err)
	}
	return views, nil
}

// Create stores the announcement and publishes a created event for the
// notification subscribers.
func (s *Service) Create(ctx context.Context, actor *auth.Identity, dto CreateAnnouncementDTO) (*Announcement, error) {
	if err := s.policy.Authorize(actor, auth.ResourceAnnouncements, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a := &Announcement{
		Title:     dto.Title,
		Content:   dto.Content,
		Type:      dto.Type,
		Priority:  dto.Priority,
		CreatedBy: actor.ID,
		CompanyID: actor.CompanyID,
	}

	if err := s.repo.Create(a); err != nil {
		return nil, internal.NewInternalError("failed to create announcement", err)
	}

	if err := s.bus.Publish(ctx, events.NewAnnouncementCreatedEvent(a.ID, a.CompanyID, actor.ID, a.Title)); err != nil {
		// notification delivery is best-effort; the announcement stands
		s.logger.Warn("failed to publish announcement event", "announcement_id", a.ID, "error", err)
	}

	s.logger.Info("announcement created", "announcement_id", a.ID, "company_id", a.CompanyID, "by", actor.ID)
	return a, nil
}

func (s *Service) Update(actor *auth.Identity, id int64, dto UpdateAnnouncementDTO) error {
	if err := s.policy.Authorize(actor, auth.ResourceAnnouncements, auth.ActionUpdate); err != nil {
		return err
	}
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id, actor.CompanyID); err != nil {
		return internal.ErrAnnouncementNotFound
	}

	if err := s.repo.Update(id, actor.CompanyID, dto.Title, dto.Content, dto.Type, dto.Priority); err != nil {
		return internal.NewInternalError("failed to update announcement", err)
	}
	return nil
}

func (s *Service) Delete(actor *auth.Identity, id int64) error {
	if err := s.policy.Authorize(actor, auth.ResourceAnnouncements, auth.ActionDelete); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id, actor.CompanyID); err != nil {
		return internal.ErrAnnouncementNotFound
	}

	if err := s.repo.Delete(id, actor.CompanyID); err != nil {
		return internal.NewInternalError("failed to delete announcement", err)
	}

	s.logger.Info("announcement deleted", "announcement_id", id, "by", actor.ID)
	return nil
}

// NotificationSubscriber reacts to announcement events. The current
// implementation records the broadcast; push channels hang off the same
// subscription point.
type NotificationSubscriber struct {
	Logger *slog.Logger
}

func (n *NotificationSubscriber) Register(bus *events.EventBus) {
	bus.Subscribe(events.AnnouncementCreated, n.handleCreated)
}

func (n *NotificationSubscriber) handleCreated(ctx context.Context, event events.Event) error {
	n.Logger.Info("announcement notification dispatched",
		"event_id", event.EventID(),
		"actor_id", internal.UserIDFromContext(ctx),
		"payload", event.Payload())
	return nil
}
