package sniper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"launch-sniper/internal/sniper/config"
	"launch-sniper/internal/sniper/consumer"
	"launch-sniper/internal/sniper/executor"
	"launch-sniper/internal/sniper/extractor"
	"launch-sniper/internal/sniper/filter"
	"launch-sniper/internal/sniper/handler"
	"launch-sniper/internal/sniper/monitor"
	"launch-sniper/internal/sniper/stream"
	"launch-sniper/internal/sniper/writer"
	"launch-sniper/internal/sniper/writer/order"
	"launch-sniper/pkg/httpclient"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Core 把流入口、解码、过滤、下单各组件组装成一条管线
type Core struct {
	cfg        config.Config
	tl         *zap.Logger
	httpClient *httpclient.HTTPClient
	submitter  writer.Submitter
	handler    *handler.UpdateHandler
	source     stream.Source
	metrics    *monitor.MetricsServer
}

func New(cfg config.Config, logger *zap.Logger) (*Core, error) {
	// 元数据外呼客户端，限速避免打爆 IPFS 网关
	httpClient := httpclient.NewHTTPClient(httpclient.HTTPClientConfig{
		Timeout:   time.Duration(cfg.Filter.XFetchTimeoutSec) * time.Second,
		RateLimit: cfg.Filter.XFetchRateLimit,
	}, logger)

	// 订单提交边界
	mq := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.Kafka.Brokers, ",")...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  5,
	}
	submitter := order.NewKafkaOrderSubmitter(mq, logger, cfg.Kafka.TopicOrder)

	exec, err := executor.New(cfg.Trade, submitter, logger)
	if err != nil {
		return nil, fmt.Errorf("init executor: %w", err)
	}

	evaluator := filter.NewEvaluator(cfg.Filter, httpClient, logger)
	ext := extractor.New(logger)

	return &Core{
		cfg:        cfg,
		tl:         logger,
		httpClient: httpClient,
		submitter:  submitter,
		handler:    handler.NewUpdateHandler(cfg.Worker.WorkerNum, ext, evaluator, exec, logger),
		metrics:    monitor.NewMetricsServer(cfg.Monitor),
	}, nil
}

// Start 连接数据源并启动消费循环，阻塞到 ctx 取消
func (c *Core) Start(ctx context.Context) error {
	c.tl.Info("Starting sniper core...")

	if c.metrics != nil {
		c.metrics.Run()
	}

	source, err := stream.NewGeyserSource(ctx, c.cfg.Grpc, c.tl)
	if err != nil {
		return fmt.Errorf("connect geyser: %w", err)
	}
	c.source = source

	consumer.NewConsumer(source, c.tl).Start(ctx, c.handler)
	c.tl.Info("Sniper started successfully")

	<-ctx.Done()
	c.tl.Info("Shutting down sniper due to context cancellation...")
	return nil
}

// Stop 优雅关闭所有资源，先等在途任务再关出口
func (c *Core) Stop(ctx context.Context) {
	c.tl.Info("Stopping sniper core...")

	if c.source != nil {
		_ = c.source.Close()
	}

	c.handler.Stop()

	if err := c.submitter.Close(); err != nil {
		c.tl.Warn("⚠️ submitter close failed", zap.Error(err))
	}
	_ = c.httpClient.Close()

	if c.metrics != nil {
		_ = c.metrics.Stop(ctx)
	}

	c.tl.Info("Sniper core stopped.")
}
