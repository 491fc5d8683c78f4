package order

import (
	"context"
	"time"

	"launch-sniper/internal/sniper/model"
	"launch-sniper/internal/sniper/writer"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const RETRY_COUNT = 3

// KafkaOrderSubmitter 将订单事件以 JSON 写入 Kafka，由下游执行服务消费签名上链
type KafkaOrderSubmitter struct {
	mq *kafka.Writer
	tl *zap.Logger

	topic string
}

func NewKafkaOrderSubmitter(mq *kafka.Writer, tl *zap.Logger, topic string) writer.Submitter {
	return &KafkaOrderSubmitter{mq: mq, tl: tl, topic: topic}
}

func (w *KafkaOrderSubmitter) Submit(ctx context.Context, order model.Order) error {
	jsonData, err := sonic.Marshal(model.NewOrderEvent(order))
	if err != nil {
		w.tl.Error("❌ order event marshal failed", zap.String("tx", order.TxID), zap.Error(err))
		return err
	}
	msg := kafka.Message{
		Topic: w.topic,
		Key:   []byte(order.Accounts.BaseTokenMint.String()),
		Value: jsonData,
	}

	newCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	// 重试机制
	for attempt := 0; attempt < RETRY_COUNT; attempt++ {
		err = w.mq.WriteMessages(newCtx, msg)
		if err == nil {
			return nil
		}
	}
	w.tl.Warn("❌ MQ write failed, exceeded the maximum number of retries", zap.String("tx", order.TxID), zap.Error(err))
	return err
}

func (w *KafkaOrderSubmitter) Close() error {
	return w.mq.Close()
}
