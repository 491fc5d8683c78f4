package filter

import (
	"context"
	"strings"
	"time"

	"launch-sniper/internal/sniper/config"
	"launch-sniper/internal/sniper/model"
	"launch-sniper/pkg/httpclient"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	defaultFetchTimeout = 5 * time.Second
	metadataCacheTTL    = 2 * time.Minute
)

// SocialFilter 拉取 mint 元数据 URI，检查返回内容是否包含白名单中的社交标识。
// 拉取失败（超时、非 2xx、空 URI）一律视为不通过，宁可错过不可误买。
type SocialFilter struct {
	enabled   bool
	allowList []string
	timeout   time.Duration
	client    *httpclient.HTTPClient
	cache     *gocache.Cache
	tl        *zap.Logger
}

func NewSocialFilter(cfg config.FilterConfig, client *httpclient.HTTPClient, logger *zap.Logger) *SocialFilter {
	timeout := defaultFetchTimeout
	if cfg.XFetchTimeoutSec > 0 {
		timeout = time.Duration(cfg.XFetchTimeoutSec) * time.Second
	}
	return &SocialFilter{
		enabled:   cfg.XCheck,
		allowList: cfg.XFilterList,
		timeout:   timeout,
		client:    client,
		cache:     gocache.New(metadataCacheTTL, 5*time.Minute),
		tl:        logger,
	}
}

func (f *SocialFilter) Name() string { return "socialFilter" }

func (f *SocialFilter) Enabled() bool { return f.enabled }

func (f *SocialFilter) Pass(ctx context.Context, opp model.Opportunity) bool {
	uri := opp.Mint.Params.URI
	if uri == "" {
		return false
	}

	body, err := f.fetchMetadata(ctx, uri)
	if err != nil {
		f.tl.Warn("❌ metadata fetch failed", zap.String("tx", opp.TxID), zap.String("uri", uri), zap.Error(err))
		return false
	}

	for _, keyword := range f.allowList {
		if strings.Contains(body, keyword) {
			return true
		}
	}
	return false
}

// fetchMetadata 带短 TTL 缓存，同一 URI 多次出现时不重复外呼
func (f *SocialFilter) fetchMetadata(ctx context.Context, uri string) (string, error) {
	if cached, ok := f.cache.Get(uri); ok {
		return cached.(string), nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.client.GetText(fetchCtx, uri)
	if err != nil {
		return "", err
	}

	f.cache.Set(uri, body, gocache.DefaultExpiration)
	return body, nil
}
