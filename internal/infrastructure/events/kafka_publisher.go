package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-empresas/internal/application/inventory"
	"github.com/jhoicas/inventario-empresas/pkg/config"
	"github.com/jhoicas/inventario-empresas/pkg/logger"
)

// EventTypeInventoryChanged valor del header event_type.
const EventTypeInventoryChanged = "inventory.changed"

// DefaultTimeout tope de publicación cuando no se configura KAFKA_TIMEOUT.
const DefaultTimeout = 2 * time.Second

var _ inventory.EventPublisher = (*Publisher)(nil)

// Publisher publica eventos de inventario en Kafka con un SyncProducer.
// Cada envío espera a lo sumo timeout; el llamador nunca queda bloqueado por un broker caído.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	timeout  time.Duration
	log      *logger.Logger
}

// NewProducerConfig configuración del productor: acks de todas las réplicas, snappy y un único reintento.
// timeout acota dial, lectura, escritura, metadata y la espera de acks del broker.
func NewProducerConfig(timeout time.Duration) *sarama.Config {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 1
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.Timeout = timeout
	cfg.Net.DialTimeout = timeout
	cfg.Net.ReadTimeout = timeout
	cfg.Net.WriteTimeout = timeout
	cfg.Metadata.Retry.Max = 1
	cfg.Metadata.Retry.Backoff = 100 * time.Millisecond
	cfg.Metadata.Timeout = timeout
	return cfg
}

// NewPublisher conecta con los brokers de cfg.
func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewProducerConfig(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	p := NewPublisherWithProducer(producer, cfg.Topic, cfg.Timeout, log)
	p.log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Dur("timeout", p.timeout).Msg("publicador Kafka inicializado")
	return p, nil
}

// NewPublisherWithProducer usa un productor ya construido (tests con sarama/mocks). timeout <= 0 usa DefaultTimeout.
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, timeout time.Duration, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Publisher{producer: producer, topic: topic, timeout: timeout, log: log.Component("kafka-publisher")}
}

// PublishInventoryChanged envía el evento con key <nit>/<code> para conservar el orden por par.
// El contexto de traza viaja en los headers.
func (p *Publisher) PublishInventoryChanged(ctx context.Context, event inventory.ChangedEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.inventory_changed",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", p.topic),
			attribute.String("event.id", event.EventID),
			attribute.String("company.nit", event.CompanyNIT),
			attribute.String("product.code", event.ProductCode),
		),
	)
	defer span.End()

	payload, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal event")
		return fmt.Errorf("marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(EventTypeInventoryChanged)},
		{Key: []byte("event_id"), Value: []byte(event.EventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	partition, offset, err := p.send(ctx, &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder(event.CompanyNIT + "/" + event.ProductCode),
		Value:   sarama.ByteEncoder(payload),
		Headers: headers,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send message")
		return fmt.Errorf("send message to kafka: %w", err)
	}
	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)

	p.log.Debug().
		Str("event_id", event.EventID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("evento publicado")
	return nil
}

type sendResult struct {
	partition int32
	offset    int64
	err       error
}

// send corta la espera al vencer p.timeout o ctx. SendMessage no recibe contexto: el envío
// abandonado termina por los timeouts de red del productor.
func (p *Publisher) send(ctx context.Context, msg *sarama.ProducerMessage) (int32, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan sendResult, 1)
	go func() {
		partition, offset, err := p.producer.SendMessage(msg)
		done <- sendResult{partition: partition, offset: offset, err: err}
	}()

	select {
	case r := <-done:
		return r.partition, r.offset, r.err
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	}
}

// Close cierra el productor.
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
