package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/salesdesk/oms/internal/dal/rabbitmq"
	"github.com/salesdesk/oms/internal/service/models/auditlog"
)

// QueueName is the audit queue for order lifecycle events.
const QueueName = "oms.order.audit"

// AuditRabbitMQRepository publishes order audit events to RabbitMQ.
type AuditRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

// NewAuditRabbitMQRepository creates the repository and declares its queue.
func NewAuditRabbitMQRepository(client *rabbitmq.Client) *AuditRabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       QueueName,
		Durable:    false,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &AuditRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// Publish sends the given events to the audit queue. Publishing is
// bounded to a few concurrent sends; the first failure aborts the group.
func (r *AuditRabbitMQRepository) Publish(ctx context.Context, events ...auditlog.Event) error {
	auditCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	g, _ := errgroup.WithContext(auditCtx)
	g.SetLimit(3)

	for _, event := range events {
		g.Go(func() error {
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}

			return r.client.Channel().Publish(
				"",
				r.queue.Name,
				false,
				false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        payload,
				},
			)
		})
	}

	return g.Wait()
}
