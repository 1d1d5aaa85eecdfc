package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reflect360-be/internal/dto"
	"reflect360-be/internal/model"
	"reflect360-be/internal/pkg/logger"
	"reflect360-be/internal/repository/unitofwork"
	"reflect360-be/pkg/events"
	pktNats "reflect360-be/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
}

type INotificationService interface {
	Start()
	GetNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]dto.NotificationResponse, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
	offline    bool
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
	offline bool,
) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
		offline:    offline,
	}
}

// Start begins listening to the event bus.
func (s *notificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", event.EventType()), map[string]interface{}{"type": event.EventType()})

	// Only response submissions notify anyone; login and registration events
	// are consumed for the audit log only.
	if event.EventType() != events.TypeResponseSubmitted {
		return nil
	}

	payload := event.Payload()
	surveyIdStr, ok := payload["survey_id"].(string)
	if !ok {
		s.logger.Warn("NotificationService", "RESPONSE_SUBMITTED without survey_id", nil)
		return nil
	}
	surveyId, err := uuid.Parse(surveyIdStr)
	if err != nil {
		s.logger.Warn("NotificationService", "RESPONSE_SUBMITTED with bad survey_id", map[string]interface{}{"survey_id": surveyIdStr})
		return nil
	}

	relationship, _ := payload["relationship"].(string)

	metaJSON, _ := json.Marshal(payload)
	notif := model.Notification{
		Id:        uuid.New(),
		UserId:    surveyId,
		Type:      events.TypeResponseSubmitted,
		Title:     "New feedback received",
		Body:      fmt.Sprintf("Someone in your '%s' group just answered your survey.", relationship),
		Metadata:  datatypes.JSON(metaJSON),
		Read:      false,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", "Error saving notification", map[string]interface{}{"error": err})
		return err // NATS will retry
	}

	if s.delivery != nil {
		s.delivery.Send(surveyId, notif)
	}
	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]dto.NotificationResponse, error) {
	if s.offline {
		return nil, ErrCloudDisabled
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.NotificationRepository().FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NotificationResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, dto.NotificationResponse{
			Id:        n.Id,
			Type:      n.Type,
			Message:   n.Body,
			Metadata:  n.Metadata,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if s.offline {
		return ErrCloudDisabled
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, id, userID)
}
