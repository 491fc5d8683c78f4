package filter

import (
	"context"

	"launch-sniper/internal/sniper/config"
	"launch-sniper/internal/sniper/model"
	"launch-sniper/pkg/httpclient"

	"go.uber.org/zap"
)

// Filter 单个过滤器：Pass 返回 true 表示机会通过该项检查
type Filter interface {
	Name() string
	Enabled() bool
	Pass(ctx context.Context, opp model.Opportunity) bool
}

// Evaluator 按固定顺序执行过滤器链：social → token name → dev buy。
// 任何一个启用的过滤器拒绝即短路，后续不再执行。
type Evaluator struct {
	filters []Filter
	tl      *zap.Logger
}

func NewEvaluator(cfg config.FilterConfig, client *httpclient.HTTPClient, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		filters: []Filter{
			NewSocialFilter(cfg, client, logger),
			NewTokenNameFilter(cfg),
			NewDevBuyFilter(cfg),
		},
		tl: logger,
	}
}

// Pass 返回机会是否全部通过；被拒绝时同时返回拒绝它的过滤器名
func (e *Evaluator) Pass(ctx context.Context, opp model.Opportunity) (bool, string) {
	for _, f := range e.filters {
		if !f.Enabled() {
			continue
		}
		if !f.Pass(ctx, opp) {
			e.tl.Info("⚠️ opportunity rejected",
				zap.String("tx", opp.TxID),
				zap.String("token", opp.Mint.Params.Name),
				zap.String("filter", f.Name()),
			)
			return false, f.Name()
		}
	}
	return true, ""
}
