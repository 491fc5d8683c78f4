package handler

import (
	"context"
	"time"

	"launch-sniper/internal/sniper/executor"
	"launch-sniper/internal/sniper/extractor"
	"launch-sniper/internal/sniper/filter"
	"launch-sniper/internal/sniper/model"
	"launch-sniper/internal/sniper/monitor"
	"launch-sniper/pkg/utils"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const defaultWorkerNum = 16

// UpdateHandler 处理一条流更新：提取机会，过滤与下单丢进有界协程池异步执行。
// 解码在调用方 goroutine 内完成，保持交易内指令顺序；过滤涉及外呼，必须并发。
type UpdateHandler struct {
	tl        *zap.Logger
	extractor *extractor.Extractor
	evaluator *filter.Evaluator
	executor  *executor.Executor
	tasks     *pool.Pool
}

func NewUpdateHandler(workerNum int, ext *extractor.Extractor, evaluator *filter.Evaluator, exec *executor.Executor, logger *zap.Logger) *UpdateHandler {
	if workerNum <= 0 {
		workerNum = defaultWorkerNum
	}
	return &UpdateHandler{
		tl:        logger,
		extractor: ext,
		evaluator: evaluator,
		executor:  exec,
		tasks:     pool.New().WithMaxGoroutines(workerNum),
	}
}

// HandleUpdate 非交易更新与无机会交易直接返回，有机会时投递异步任务
func (h *UpdateHandler) HandleUpdate(ctx context.Context, update *pb.SubscribeUpdate) {
	keys, ixs, txID, ok := extractor.ExtractTransaction(update)
	if !ok {
		monitor.StreamUpdatesReceived.WithLabelValues("other").Inc()
		return
	}
	monitor.StreamUpdatesReceived.WithLabelValues("transaction").Inc()

	opp, found := h.extractor.Extract(txID, ixs, keys)
	if !found {
		return
	}
	monitor.OpportunitiesFound.Inc()
	h.tl.Info("🚀 opportunity found",
		zap.String("tx", opp.TxID),
		zap.String("token", opp.Mint.Params.Name),
		zap.String("symbol", opp.Mint.Params.Symbol),
		zap.String("mint", opp.Accounts.BaseTokenMint.String()),
		zap.String("uri", opp.Mint.Params.URI),
		zap.Float64("dev_amount_in_sol", utils.LamportsToSol(opp.Params.AmountIn)),
	)

	h.tasks.Go(func() {
		h.process(ctx, opp)
	})
}

func (h *UpdateHandler) process(ctx context.Context, opp model.Opportunity) {
	start := time.Now()
	outcome := "rejected"
	defer func() {
		monitor.TaskDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	ok, rejectedBy := h.evaluator.Pass(ctx, opp)
	if !ok {
		monitor.FilterRejections.WithLabelValues(rejectedBy).Inc()
		return
	}

	if _, err := h.executor.Dispatch(ctx, opp); err != nil {
		h.tl.Error("❌ order dispatch failed", zap.String("tx", opp.TxID), zap.Error(err))
		outcome = "error"
		return
	}
	monitor.OrdersSubmitted.Inc()
	outcome = "submitted"
}

// Stop 等待在途任务跑完
func (h *UpdateHandler) Stop() {
	h.tasks.Wait()
}
