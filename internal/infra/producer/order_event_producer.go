package producer

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderPaidEvent 付款完成後發布，下游做通知信等fan-out
type OrderPaidEvent struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	PaymentRef string    `json:"payment_ref"`
	TotalCents int64     `json:"total_cents"`
	PaidAt     time.Time `json:"paid_at"`
}

type IOrderEventProducer interface {
	ProduceOrderPaidEvent(ctx context.Context, event OrderPaidEvent) error
	Close() error
}

// 需要根據orderID做分區，同一訂單的事件保證有序
type OrderEventProducer struct {
	writer *kafka.Writer
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,

		// 錯誤處理
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka order event producer error: "+msg, args...)
		}),

		// 壓縮設置
		Compression: kafka.Snappy,
	}
	return &OrderEventProducer{writer: writer}
}

func (p *OrderEventProducer) ProduceOrderPaidEvent(ctx context.Context, event OrderPaidEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.paid")},
		},
	})
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
