package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IDS-Mandujano/electronica-back/config"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/sirupsen/logrus"
)

// Event types published by the workflow
const (
	EventTicketDelivered = "servicio.entregado"
	EventPartLowStock    = "refaccion.stock_bajo"
)

// Event is a domain notification sent to the shop's event queue
type Event struct {
	Type       string      `json:"type"`
	Subject    string      `json:"subject"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload,omitempty"`
}

// Publisher sends domain events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// serviceBusPublisher sends events to an Azure Service Bus queue
type serviceBusPublisher struct {
	client    *azservicebus.Client
	sender    *azservicebus.Sender
	queueName string
	source    string
}

// logPublisher writes events to the log when no broker is configured
type logPublisher struct {
	log    *logrus.Logger
	source string
}

// NewPublisher creates a Service Bus publisher, or a log-only publisher when
// no connection string is configured.
func NewPublisher(cfg config.ServiceBusConfig, source string, log *logrus.Logger) (Publisher, error) {
	if cfg.ConnectionString == "" {
		return &logPublisher{log: log, source: source}, nil
	}

	client, err := azservicebus.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Service Bus client: %w", err)
	}

	sender, err := client.NewSender(cfg.QueueName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Service Bus sender: %w", err)
	}

	return &serviceBusPublisher{
		client:    client,
		sender:    sender,
		queueName: cfg.QueueName,
		source:    source,
	}, nil
}

// NewMessage builds the Service Bus message for an event
func NewMessage(event Event, source string) (*azservicebus.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	contentType := "application/json"
	subject := event.Type
	msg := &azservicebus.Message{
		Body:        data,
		ContentType: &contentType,
		Subject:     &subject,
		ApplicationProperties: map[string]interface{}{
			"source": source,
			"time":   event.OccurredAt.UTC().Format(time.RFC3339),
		},
	}
	if event.Subject != "" {
		msg.SessionID = &event.Subject
	}
	return msg, nil
}

func (p *serviceBusPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := NewMessage(event, p.source)
	if err != nil {
		return err
	}
	return p.sender.SendMessage(ctx, msg, nil)
}

func (p *serviceBusPublisher) Close() error {
	if p.sender != nil {
		if err := p.sender.Close(context.Background()); err != nil {
			return err
		}
	}
	if p.client != nil {
		return p.client.Close(context.Background())
	}
	return nil
}

func (p *logPublisher) Publish(ctx context.Context, event Event) error {
	if p.log == nil {
		return nil
	}
	p.log.WithFields(logrus.Fields{
		"source":  p.source,
		"type":    event.Type,
		"subject": event.Subject,
	}).Info("Event published (no broker configured)")
	return nil
}

func (p *logPublisher) Close() error {
	return nil
}
