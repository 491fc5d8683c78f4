package consumer

import (
	"context"
	"errors"
	"io"

	"launch-sniper/internal/sniper/monitor"
	"launch-sniper/internal/sniper/stream"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"go.uber.org/zap"
)

// 每处理这么多条更新打一次进度日志
const logInterval = 100

// UpdateHandler 解耦更新处理逻辑
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update *pb.SubscribeUpdate)
}

// Consumer 顺序拉取流更新并交给 handler。
// 单条错误只记日志不中断循环，流终止（EOF 或 ctx 取消）才退出。
type Consumer struct {
	tl     *zap.Logger
	source stream.Source
}

func NewConsumer(source stream.Source, logger *zap.Logger) *Consumer {
	return &Consumer{tl: logger, source: source}
}

// Start 启动消费主循环
func (c *Consumer) Start(ctx context.Context, handler UpdateHandler) {
	go c.run(ctx, handler)
}

func (c *Consumer) run(ctx context.Context, handler UpdateHandler) {
	var processed, errCount uint64

	for {
		select {
		case <-ctx.Done():
			c.tl.Warn("closing stream consumer...")
			_ = c.source.Close()
			return
		default:
		}

		update, err := c.source.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				c.tl.Warn("⌛ stream ended", zap.Error(err))
				return
			}
			monitor.StreamRecvErrors.Inc()
			errCount++
			c.tl.Warn("❌ stream recv error", zap.Error(err))
			continue
		}

		handler.HandleUpdate(ctx, update)
		processed++

		if processed%logInterval == 0 {
			c.tl.Info("📊 stream progress",
				zap.Uint64("processed", processed),
				zap.Uint64("errors", errCount),
			)
		}
	}
}
