package filter

import (
	"context"

	"launch-sniper/internal/sniper/config"
	"launch-sniper/internal/sniper/model"
	"launch-sniper/pkg/utils"
)

// DevBuyFilter 要求 dev 的首笔买入量严格大于配置阈值。
// 阈值以 SOL 配置，比较在 lamports 上进行；恰好等于阈值不通过。
type DevBuyFilter struct {
	enabled       bool
	limitLamports uint64
}

func NewDevBuyFilter(cfg config.FilterConfig) *DevBuyFilter {
	return &DevBuyFilter{
		enabled:       cfg.DevBuyCheck,
		limitLamports: utils.SolToLamports(cfg.DevBuyLimit),
	}
}

func (f *DevBuyFilter) Name() string { return "devBuyFilter" }

func (f *DevBuyFilter) Enabled() bool { return f.enabled }

func (f *DevBuyFilter) Pass(_ context.Context, opp model.Opportunity) bool {
	return opp.Params.AmountIn > f.limitLamports
}
