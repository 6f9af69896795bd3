package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	"github.com/Daniyar8k/park-ledger-system/pkg/metrics"
	"github.com/Daniyar8k/park-ledger-system/pkg/rabbit"
)

// BackupProducer ships state snapshots to a fanout exchange. Consumers
// (archival workers, off-site replicas) bind their own queues.
type BackupProducer struct {
	client   *rabbit.RabbitMQ
	exchange string
	l        logger.Logger
}

func NewBackupProducer(client *rabbit.RabbitMQ, exchange string, l logger.Logger) (*BackupProducer, error) {
	const op = "BackupProducer.New"

	if err := client.Channel.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("%s: failed to declare exchange: %w", op, err)
	}

	return &BackupProducer{
		client:   client,
		exchange: exchange,
		l:        l,
	}, nil
}

// PublishBackup publishes a snapshot as a persistent JSON message.
func (r *BackupProducer) PublishBackup(ctx context.Context, snapshot models.BackupSnapshot) error {
	const op = "BackupProducer.PublishBackup"

	if err := r.client.EnsureConnection(ctx); err != nil {
		r.l.Error(wrap.WithAction(ctx, "publish_backup"), "ensure connection failed", err)
		metrics.RecordBackupPublish(err)
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		ctx = wrap.WithAction(ctx, "marshal_backup")
		metrics.RecordBackupPublish(err)
		return wrap.Error(ctx, fmt.Errorf("%s: failed to marshal snapshot: %w", op, err))
	}

	err = r.client.Channel.PublishWithContext(
		ctx,
		r.exchange, // exchange
		"",         // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	metrics.RecordBackupPublish(err)
	if err != nil {
		ctx = wrap.WithAction(ctx, "publish_backup")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to publish with context: %w", op, err))
	}

	return nil
}
