package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/kingrain94/waapify-relay/internal/repository"
	"github.com/kingrain94/waapify-relay/internal/service/queue"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

// IndexWorker copies message records from the index queue into the search
// index.
type IndexWorker struct {
	*queueConsumer
	search repository.SearchRepository
}

func NewIndexWorker(
	messageQueue MessageQueue,
	queueURL string,
	search repository.SearchRepository,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *IndexWorker {
	w := &IndexWorker{search: search}
	w.queueConsumer = newQueueConsumer("Index", messageQueue, queueURL, w.processMessage, logger, workerCount, pollInterval)
	return w
}

func (w *IndexWorker) processMessage(ctx context.Context, msg queue.Message) error {
	w.logger.Infof("Processing message of type %s for tenant %s", msg.Type, msg.TenantKey)

	switch msg.Type {
	case queue.MessageTypeIndex:
		if len(msg.Records) != 1 {
			return fmt.Errorf("invalid number of records for INDEX message: %d", len(msg.Records))
		}
		return w.search.Index(ctx, &msg.Records[0])

	case queue.MessageTypeBulkIndex:
		if len(msg.Records) == 0 {
			return fmt.Errorf("empty records array for BULK_INDEX message")
		}
		return w.search.BulkIndex(ctx, msg.Records)
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
