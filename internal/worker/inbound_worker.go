package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/service/queue"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

type EventProcessor interface {
	Process(ctx context.Context, event *domain.ProviderEvent) error
}

// InboundWorker drains the FIFO queue of gateway events. A failed event stays
// on the queue and blocks its message group until it is redelivered.
type InboundWorker struct {
	*queueConsumer
	processor EventProcessor
	timeout   time.Duration
}

func NewInboundWorker(
	messageQueue MessageQueue,
	queueURL string,
	processor EventProcessor,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *InboundWorker {
	w := &InboundWorker{processor: processor, timeout: 60 * time.Second}
	w.queueConsumer = newQueueConsumer("Inbound", messageQueue, queueURL, w.processMessage, logger, workerCount, pollInterval)
	return w
}

func (w *InboundWorker) processMessage(ctx context.Context, msg queue.Message) error {
	if msg.Type != queue.MessageTypeInboundEvent {
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
	if msg.Event == nil {
		return fmt.Errorf("INBOUND_EVENT message carries no event")
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	return w.processor.Process(ctx, msg.Event)
}
