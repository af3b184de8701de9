package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"

	"github.com/kingrain94/waapify-relay/internal/config"
	"github.com/kingrain94/waapify-relay/internal/domain"
)

type MessageType string

const (
	MessageTypeIndex        MessageType = "INDEX"
	MessageTypeBulkIndex    MessageType = "BULK_INDEX"
	MessageTypeInboundEvent MessageType = "INBOUND_EVENT"
)

type Message struct {
	Type      MessageType            `json:"type"`
	TenantKey string                 `json:"tenant_key,omitempty"`
	Records   []domain.MessageRecord `json:"records,omitempty"`
	Event     *domain.ProviderEvent  `json:"event,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

type ReceivedMessage struct {
	Message       Message
	ReceiptHandle *string
}

// Client is the subset of the SQS API the service uses.
type Client interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type SQSService struct {
	client          Client
	indexQueueURL   string
	inboundQueueURL string
}

func NewSQSService(client Client, config *config.SQSConfig) *SQSService {
	return &SQSService{
		client:          client,
		indexQueueURL:   config.IndexQueueURL,
		inboundQueueURL: config.InboundQueueURL,
	}
}

func (s *SQSService) IndexQueueURL() string {
	return s.indexQueueURL
}

func (s *SQSService) InboundQueueURL() string {
	return s.inboundQueueURL
}

func (s *SQSService) SendIndexMessage(ctx context.Context, record *domain.MessageRecord) error {
	msg := Message{
		Type:      MessageTypeIndex,
		TenantKey: record.TenantKey(),
		Records:   []domain.MessageRecord{*record},
		Timestamp: time.Now(),
	}

	return s.sendMessage(ctx, msg, s.indexQueueURL, nil)
}

func (s *SQSService) SendBulkIndexMessage(ctx context.Context, records []domain.MessageRecord) error {
	if len(records) == 0 {
		return nil
	}

	msg := Message{
		Type:      MessageTypeBulkIndex,
		TenantKey: records[0].TenantKey(),
		Records:   records,
		Timestamp: time.Now(),
	}

	return s.sendMessage(ctx, msg, s.indexQueueURL, nil)
}

// SendInboundEvent queues a gateway event on the FIFO inbound queue, grouped
// by gateway instance.
func (s *SQSService) SendInboundEvent(ctx context.Context, event *domain.ProviderEvent) error {
	msg := Message{
		Type:      MessageTypeInboundEvent,
		Event:     event,
		Timestamp: event.ReceivedAt,
	}

	return s.sendMessage(ctx, msg, s.inboundQueueURL, func(input *sqs.SendMessageInput) {
		input.MessageGroupId = aws.String(event.InstanceID)
		input.MessageDeduplicationId = aws.String(uuid.New().String())
	})
}

func (s *SQSService) sendMessage(ctx context.Context, msg Message, queueURL string, decorate func(*sqs.SendMessageInput)) error {
	msgBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	input := &sqs.SendMessageInput{
		MessageBody: aws.String(string(msgBody)),
		QueueUrl:    aws.String(queueURL),
	}
	if decorate != nil {
		decorate(input)
	}

	_, err = s.client.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (s *SQSService) ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]ReceivedMessage, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(queueURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     waitTimeSeconds,
	}

	output, err := s.client.ReceiveMessage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	var messages []ReceivedMessage
	for _, msg := range output.Messages {
		var message Message
		if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &message); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		messages = append(messages, ReceivedMessage{
			Message:       message,
			ReceiptHandle: msg.ReceiptHandle,
		})
	}

	return messages, nil
}

func (s *SQSService) DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error {
	input := &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: receiptHandle,
	}

	_, err := s.client.DeleteMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}
