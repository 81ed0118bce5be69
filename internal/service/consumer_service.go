package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"focusforge-be/internal/dto"
	"focusforge-be/internal/entity"
	"focusforge-be/internal/repository/specification"
	"focusforge-be/internal/repository/unitofwork"
	"focusforge-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService embeds session memories off the request path. The workflow
// publishes a message per stored session; this consumer computes the vector
// and backfills the row, making it visible to similarity search.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Embedding session memory %s", payload.SessionId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.SessionMemoryRepository().FindOne(ctx, specification.BySessionID{SessionID: payload.SessionId})
	if err != nil {
		log.Printf("[ERROR] Failed to load session memory %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if record == nil {
		log.Printf("[ERROR] Session memory not found: %s", payload.SessionId)
		msg.Ack() // Record deleted? Ack.
		return
	}

	res, err := cs.embeddingProvider.Generate(memoryText(record), "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to embed session %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	if err := uow.SessionMemoryRepository().UpdateEmbedding(ctx, payload.SessionId, res.Embedding.Values); err != nil {
		log.Printf("[ERROR] Failed to store embedding for %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Session %s embedded", payload.SessionId)
	msg.Ack()
}

// memoryText is the document representation used for similarity search, kept
// in the same shape the architect queries with.
func memoryText(record *entity.SessionMemory) string {
	return record.UserInput + " " + record.UserState + " " + strings.Join(record.RitualSteps, " ")
}
