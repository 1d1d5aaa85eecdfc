// FILE: internal/service/feedback_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reflect360-be/internal/dto"
	"reflect360-be/internal/entity"
	"reflect360-be/internal/pkg/mailer"
	"reflect360-be/internal/repository/specification"
	"reflect360-be/internal/repository/unitofwork"
	"reflect360-be/pkg/events"
	pktNats "reflect360-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IFeedbackService interface {
	// AddResponse records an anonymous answer for the survey identified by
	// surveyId. No auth; fails only when surveyId resolves to no user.
	AddResponse(ctx context.Context, surveyId uuid.UUID, req *dto.SubmitResponseRequest) error

	// GetResponsesForUser returns the caller's responses, newest first,
	// optionally filtered to one relationship group. No responses is an
	// empty list, not an error.
	GetResponsesForUser(ctx context.Context, userId uuid.UUID, relationship string) (*dto.ResponseListResponse, error)

	ShareLink(userId uuid.UUID) string
	Invite(ctx context.Context, userId uuid.UUID, req *dto.InviteRequest) error
}

// ResponseSubmittedPayload is the in-process message sent on every new
// response, consumed for analysis cache invalidation.
type ResponseSubmittedPayload struct {
	SurveyId     uuid.UUID `json:"survey_id"`
	Relationship string    `json:"relationship"`
}

type feedbackService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	pubSub         *gochannel.GoChannel
	topicName      string
	emailService   mailer.IEmailService
	clientURL      string
	offline        bool
}

func NewFeedbackService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	clientURL string,
	offline bool,
) IFeedbackService {
	return &feedbackService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		pubSub:         pubSub,
		topicName:      topicName,
		emailService:   emailService,
		clientURL:      clientURL,
		offline:        offline,
	}
}

func (s *feedbackService) AddResponse(ctx context.Context, surveyId uuid.UUID, req *dto.SubmitResponseRequest) error {
	if s.offline {
		return ErrCloudDisabled
	}

	// Submission is unauthenticated; the group is checked here too, not just
	// by the DTO validator.
	if !entity.ValidRelationship(entity.Relationship(req.Relationship)) {
		return ErrInvalidRelationship
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The survey id is the surveyed user's id; an unknown one is rejected so
	// responses never dangle.
	owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: surveyId})
	if err != nil {
		return err
	}
	if owner == nil {
		return ErrSurveyNotFound
	}

	response := &entity.FeedbackResponse{
		Id:           uuid.New(),
		SurveyId:     surveyId,
		Relationship: entity.Relationship(req.Relationship),
		QChange:      req.QChange,
		QActions:     req.QActions,
		CreatedAt:    time.Now(),
	}

	if err := uow.FeedbackRepository().Create(ctx, response); err != nil {
		return err
	}

	s.publishSubmitted(response)
	return nil
}

// publishSubmitted fans the event out on both buses: the in-process channel
// drives cache invalidation, NATS drives cross-instance notifications.
func (s *feedbackService) publishSubmitted(response *entity.FeedbackResponse) {
	payload := ResponseSubmittedPayload{
		SurveyId:     response.SurveyId,
		Relationship: string(response.Relationship),
	}

	if s.pubSub != nil {
		data, err := json.Marshal(payload)
		if err == nil {
			msg := message.NewMessage(watermill.NewUUID(), data)
			if err := s.pubSub.Publish(s.topicName, msg); err != nil {
				fmt.Printf("[EVENTS] Failed to publish to %s: %v\n", s.topicName, err)
			}
		}
	}

	if s.eventPublisher != nil {
		go func() {
			event := events.BaseEvent{
				Type: events.TypeResponseSubmitted,
				Data: map[string]interface{}{
					"survey_id":    response.SurveyId.String(),
					"relationship": string(response.Relationship),
				},
				OccurredAt: time.Now(),
			}
			if err := s.eventPublisher.Publish(context.Background(), event); err != nil {
				fmt.Printf("[EVENTS] Failed to publish RESPONSE_SUBMITTED: %v\n", err)
			}
		}()
	}
}

func (s *feedbackService) GetResponsesForUser(ctx context.Context, userId uuid.UUID, relationship string) (*dto.ResponseListResponse, error) {
	if s.offline {
		return nil, ErrCloudDisabled
	}

	specs := []specification.Specification{
		specification.BySurveyID{SurveyID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if relationship != "" {
		if !entity.ValidRelationship(entity.Relationship(relationship)) {
			return nil, ErrInvalidRelationship
		}
		specs = append(specs, specification.ByRelationship{Relationship: relationship})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	responses, err := uow.FeedbackRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := &dto.ResponseListResponse{
		Responses: make([]dto.FeedbackResponseDTO, 0, len(responses)),
		Total:     int64(len(responses)),
	}
	for _, r := range responses {
		out.Responses = append(out.Responses, dto.FeedbackResponseDTO{
			Id:           r.Id,
			Relationship: string(r.Relationship),
			QChange:      r.QChange,
			QActions:     r.QActions,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out, nil
}

func (s *feedbackService) ShareLink(userId uuid.UUID) string {
	return fmt.Sprintf("%s/survey/%s", s.clientURL, userId)
}

func (s *feedbackService) Invite(ctx context.Context, userId uuid.UUID, req *dto.InviteRequest) error {
	if s.offline {
		return ErrCloudDisabled
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if owner == nil {
		return ErrNotFound
	}

	link := s.ShareLink(userId)
	for _, email := range req.Emails {
		go func(to string) {
			if err := s.emailService.SendSurveyInvite(to, owner.FullName, link); err != nil {
				fmt.Printf("Error sending survey invite to %s: %v\n", to, err)
			}
		}(email)
	}
	return nil
}
