package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/incident-service/internal/config"
	"github.com/spec-kit/incident-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIncidentRegistered, n.handleIncidentRegistered)
	n.dispatcher.Subscribe(events.EventIncidentUpdated, n.handleIncidentUpdated)
	n.dispatcher.Subscribe(events.EventIncidentResolved, n.handleIncidentResolved)
	n.dispatcher.Subscribe(events.EventIncidentDeleted, n.handleIncidentDeleted)
}

func (n *NotificationService) handleIncidentRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentRegistered", zap.Int64("incident_id", event.IncidentID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIncidentUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentUpdated", zap.Int64("incident_id", event.IncidentID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIncidentResolved(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentResolved", zap.Int64("incident_id", event.IncidentID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIncidentDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentDeleted", zap.Int64("incident_id", event.IncidentID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("incident_id", event.IncidentID),
		zap.String("event_type", string(event.Type)))
}
