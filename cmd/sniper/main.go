package main

import (
	"context"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"launch-sniper/internal/sniper"
	"launch-sniper/internal/sniper/config"
	"launch-sniper/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 初始化配置文件
	cfg := config.InitConfig()

	// 初始化 trace provider
	logger.InitTrace("launch-sniper", "sniper")
	// 启动主 span
	ctx, span := logger.StartSpan(context.Background(), "main", "main")
	defer span.End()

	// 创建 root logger 并注入 trace 上下文
	rootLogger := logger.NewLogger("sniper")
	logger.SetLogLevel(cfg.Log.Level)
	tl := logger.WithTrace(ctx, rootLogger)

	// 启动配置热加载监听
	go config.WatchConfig(&cfg)

	// 初始化 sniper
	core, err := sniper.New(cfg, tl)
	if err != nil {
		tl.Fatal("failed to init sniper core", zap.Error(err))
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 启动 sniper
	go func() {
		tl.Info("Starting launch-sniper...")
		if err := core.Start(ctx); err != nil {
			tl.Error("sniper core exited with error", zap.Error(err))
			cancel()
		}
	}()

	// 监听操作系统信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		tl.Info("Received shutdown signal, starting graceful shutdown...")
	case <-ctx.Done():
	}

	// 关闭资源
	core.Stop(context.Background())

	tl.Info("Shutting down all cores...")
}
