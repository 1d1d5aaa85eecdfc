package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"reflect360-be/internal/model"
	"reflect360-be/pkg/events"

	"github.com/google/uuid"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error { return nil }

// deliveryFunc adapts a function to NotificationDelivery.
type deliveryFunc func(userID uuid.UUID)

func (f deliveryFunc) Send(userID uuid.UUID, _ model.Notification) {
	f(userID)
}

func TestHandleEventCreatesAndDeliversNotification(t *testing.T) {
	factory := newFakeUowFactory()
	var delivered []uuid.UUID
	svc := &notificationService{
		uowFactory: factory,
		delivery:   deliveryFunc(func(id uuid.UUID) { delivered = append(delivered, id) }),
		logger:     noopLogger{},
	}

	surveyId := uuid.New()
	err := svc.handleEvent(context.Background(), events.BaseEvent{
		Type: events.TypeResponseSubmitted,
		Data: map[string]interface{}{
			"survey_id":    surveyId.String(),
			"relationship": "peer",
		},
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("handleEvent: %v", err)
	}

	rows, err := svc.GetNotifications(context.Background(), surveyId, 20)
	if err != nil {
		t.Fatalf("GetNotifications: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("notifications = %d, want 1", len(rows))
	}
	if rows[0].Type != events.TypeResponseSubmitted || rows[0].Read {
		t.Errorf("row = %+v", rows[0])
	}

	if len(delivered) != 1 || delivered[0] != surveyId {
		t.Errorf("delivered = %v, want [%s]", delivered, surveyId)
	}
}

func TestHandleEventIgnoresOtherEventTypes(t *testing.T) {
	factory := newFakeUowFactory()
	svc := &notificationService{uowFactory: factory, logger: noopLogger{}}

	err := svc.handleEvent(context.Background(), events.BaseEvent{
		Type:       events.TypeUserLogin,
		Data:       map[string]interface{}{"user_id": uuid.New().String()},
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("handleEvent: %v", err)
	}
	if len(factory.uow.notifs.rows) != 0 {
		t.Errorf("login event must not create notifications")
	}
}

func TestHandleEventBadSurveyIdIsDropped(t *testing.T) {
	factory := newFakeUowFactory()
	svc := &notificationService{uowFactory: factory, logger: noopLogger{}}

	// Malformed ids must not bounce back to the broker for redelivery.
	err := svc.handleEvent(context.Background(), events.BaseEvent{
		Type:       events.TypeResponseSubmitted,
		Data:       map[string]interface{}{"survey_id": "not-a-uuid"},
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("handleEvent: %v", err)
	}
	if len(factory.uow.notifs.rows) != 0 {
		t.Errorf("bad event must not create notifications")
	}
}

func TestNotificationsOfflineMode(t *testing.T) {
	// With no database the reads must degrade to the flagged error, never
	// reach a repository.
	svc := NewNotificationService(nil, nil, nil, noopLogger{}, true)

	if _, err := svc.GetNotifications(context.Background(), uuid.New(), 20); !errors.Is(err, ErrCloudDisabled) {
		t.Errorf("GetNotifications err = %v, want ErrCloudDisabled", err)
	}
	if err := svc.MarkAsRead(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrCloudDisabled) {
		t.Errorf("MarkAsRead err = %v, want ErrCloudDisabled", err)
	}
}

func TestMarkAsReadIsScopedToOwner(t *testing.T) {
	factory := newFakeUowFactory()
	svc := &notificationService{uowFactory: factory, logger: noopLogger{}}

	surveyId := uuid.New()
	if err := svc.handleEvent(context.Background(), events.BaseEvent{
		Type:       events.TypeResponseSubmitted,
		Data:       map[string]interface{}{"survey_id": surveyId.String(), "relationship": "peer"},
		OccurredAt: time.Now(),
	}); err != nil {
		t.Fatalf("handleEvent: %v", err)
	}
	notifId := factory.uow.notifs.rows[0].Id

	// Another user cannot flip someone else's notification.
	if err := svc.MarkAsRead(context.Background(), notifId, uuid.New()); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	if factory.uow.notifs.rows[0].Read {
		t.Error("notification marked read by a non-owner")
	}

	if err := svc.MarkAsRead(context.Background(), notifId, surveyId); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	if !factory.uow.notifs.rows[0].Read {
		t.Error("owner MarkAsRead did not stick")
	}
}
