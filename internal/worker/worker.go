package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/service/queue"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

// MessageQueue is the queue side a consumer needs.
type MessageQueue interface {
	ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]queue.ReceivedMessage, error)
	DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error
}

// queueConsumer polls one queue from several goroutines and deletes each
// message its handler accepted.
type queueConsumer struct {
	name         string
	queue        MessageQueue
	queueURL     string
	handle       func(ctx context.Context, msg queue.Message) error
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32
	ctx          context.Context
	cancel       context.CancelFunc
	waitGroup    sync.WaitGroup
}

func newQueueConsumer(
	name string,
	messageQueue MessageQueue,
	queueURL string,
	handle func(ctx context.Context, msg queue.Message) error,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *queueConsumer {
	ctx, cancel := context.WithCancel(context.Background())
	return &queueConsumer{
		name:         name,
		queue:        messageQueue,
		queueURL:     queueURL,
		handle:       handle,
		logger:       logger.With(zap.String("worker", name)),
		workerCount:  workerCount,
		pollInterval: pollInterval,
		maxMessages:  10, // Process up to 10 messages at a time
		waitTime:     20, // Long polling: wait up to 20 seconds for messages
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *queueConsumer) Start() {
	w.logger.Infof("Starting %s workers...", w.name)

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

func (w *queueConsumer) Stop() {
	w.logger.Infof("Stopping %s workers...", w.name)
	w.cancel()
	w.waitGroup.Wait()
	w.logger.Infof("All %s workers stopped", w.name)
}

func (w *queueConsumer) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("%s worker %d started", w.name, workerID)

	pollTicker := time.NewTicker(w.pollInterval)
	defer pollTicker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Infof("%s worker %d shutting down", w.name, workerID)
			return
		case <-pollTicker.C:
			if err := w.processMessages(w.ctx); err != nil && w.ctx.Err() == nil {
				w.logger.Errorf("%s worker %d failed to process messages: %v", w.name, workerID, err)
			}
		}
	}
}

func (w *queueConsumer) processMessages(ctx context.Context) error {
	messages, err := w.queue.ReceiveMessages(ctx, w.queueURL, w.maxMessages, w.waitTime)
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, msg := range messages {
		if err := w.handle(ctx, msg.Message); err != nil {
			w.logger.Error("Failed to process message", err, zap.String("type", string(msg.Message.Type)))
			continue
		}

		// Only delete the message if processing was successful
		if err := w.queue.DeleteMessage(ctx, w.queueURL, msg.ReceiptHandle); err != nil {
			w.logger.Error("Failed to delete message", err)
		}
	}

	return nil
}

// ticker runs a job on a fixed interval until stopped.
type ticker struct {
	name     string
	interval time.Duration
	job      func(ctx context.Context) error
	logger   *logger.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func newTicker(name string, interval time.Duration, job func(ctx context.Context) error, logger *logger.Logger) *ticker {
	ctx, cancel := context.WithCancel(context.Background())
	return &ticker{
		name:     name,
		interval: interval,
		job:      job,
		logger:   logger.With(zap.String("worker", name)),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

func (t *ticker) Start() {
	t.logger.Infof("Starting %s worker (every %s)", t.name, t.interval)
	go t.run()
}

func (t *ticker) Stop() {
	t.logger.Infof("Stopping %s worker...", t.name)
	t.cancel()
	<-t.done
	t.logger.Infof("%s worker stopped", t.name)
}

// RunOnce runs the job immediately.
func (t *ticker) RunOnce(ctx context.Context) error {
	return t.job(ctx)
}

func (t *ticker) run() {
	defer close(t.done)

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-tk.C:
			if err := t.job(t.ctx); err != nil && t.ctx.Err() == nil {
				t.logger.Error("Scheduled run failed", err)
			}
		}
	}
}
