package filter

import (
	"context"

	"launch-sniper/internal/sniper/config"
	"launch-sniper/internal/sniper/model"
)

// TokenNameFilter 代币名精确匹配白名单，大小写敏感
type TokenNameFilter struct {
	enabled   bool
	allowList []string
}

func NewTokenNameFilter(cfg config.FilterConfig) *TokenNameFilter {
	return &TokenNameFilter{
		enabled:   cfg.TokenNameCheck,
		allowList: cfg.TokenNameFilterList,
	}
}

func (f *TokenNameFilter) Name() string { return "tokenNameFilter" }

func (f *TokenNameFilter) Enabled() bool { return f.enabled }

func (f *TokenNameFilter) Pass(_ context.Context, opp model.Opportunity) bool {
	for _, name := range f.allowList {
		if opp.Mint.Params.Name == name {
			return true
		}
	}
	return false
}
