package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/bloodbridge/internal/config"
	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/events"
	"github.com/spec-kit/bloodbridge/internal/repository"
)

// NotificationService reacts to domain events. High-urgency blood requests
// fan out as emergency notifications; other events go to the outbound
// channel stubs.
type NotificationService struct {
	dispatcher events.Dispatcher
	notifs     repository.NotificationRepository
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, notifs repository.NotificationRepository, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		notifs:     notifs,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBloodRequestCreated, n.handleBloodRequestCreated)
	n.dispatcher.Subscribe(events.EventDonationRecorded, n.handleDonationRecorded)
	n.dispatcher.Subscribe(events.EventHospitalVerified, n.handleHospitalVerified)
	n.dispatcher.Subscribe(events.EventNotificationBroadcast, n.handleNotificationBroadcast)
}

func (n *NotificationService) handleBloodRequestCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("BloodRequestCreated", zap.Int64("hospital_id", event.ActorID), zap.Any("payload", event.Payload))

	payload, ok := event.Payload.(events.BloodRequestCreatedPayload)
	if !ok || payload.Urgency != domain.UrgencyHigh {
		return nil
	}

	group := payload.BloodGroup
	_, err := n.notifs.Create(ctx, domain.NewNotification{
		Title:            "Urgent: " + group + " blood needed",
		Message:          "A hospital urgently needs " + group + " blood. Check open requests for details.",
		Type:             "emergency",
		Priority:         "urgent",
		BloodGroupFilter: &group,
	})
	if err != nil {
		n.logger.Warn("emergency notification failed", zap.Int64("request_id", payload.RequestID), zap.Error(err))
	}
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDonationRecorded(ctx context.Context, event events.Event) error {
	n.logger.Info("DonationRecorded", zap.Int64("hospital_id", event.ActorID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleHospitalVerified(ctx context.Context, event events.Event) error {
	n.logger.Info("HospitalVerified", zap.Int64("admin_id", event.ActorID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleNotificationBroadcast(ctx context.Context, event events.Event) error {
	n.logger.Info("NotificationBroadcast", zap.Int64("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
