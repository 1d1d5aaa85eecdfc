// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process response-submitted topic and drops
// the stale cached analysis for the surveyed user.
type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	analysisService IAnalysisService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	analysisService IAnalysisService,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		analysisService: analysisService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload ResponseSubmittedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.analysisService.Invalidate(payload.SurveyId)
	log.Printf("[INFO] Analysis cache invalidated for survey %s", payload.SurveyId)
	msg.Ack()
}
