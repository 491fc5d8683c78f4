package filter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"launch-sniper/internal/sniper/config"
	"launch-sniper/internal/sniper/model"
	"launch-sniper/pkg/httpclient"
	"launch-sniper/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testHTTPClient(t *testing.T) *httpclient.HTTPClient {
	t.Helper()
	client := httpclient.NewHTTPClient(httpclient.HTTPClientConfig{
		Timeout:    2 * time.Second,
		RateLimit:  6000,
		MaxRetries: 0,
	}, zap.NewNop())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func oppWithURI(uri string) model.Opportunity {
	return model.Opportunity{
		TxID: "test-tx",
		Mint: model.MintEvent{Params: model.MintParams{Name: "Foo", Symbol: "FOO", URI: uri}},
	}
}

func TestSocialFilter_AllowListMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"twitter":"https://x.com/foo","website":""}`))
	}))
	defer server.Close()

	f := NewSocialFilter(config.FilterConfig{
		XCheck:      true,
		XFilterList: []string{"x.com/", "t.me/"},
	}, testHTTPClient(t), zap.NewNop())

	assert.True(t, f.Pass(context.Background(), oppWithURI(server.URL)))
}

func TestSocialFilter_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"twitter":"","website":""}`))
	}))
	defer server.Close()

	f := NewSocialFilter(config.FilterConfig{
		XCheck:      true,
		XFilterList: []string{"x.com/"},
	}, testHTTPClient(t), zap.NewNop())

	assert.False(t, f.Pass(context.Background(), oppWithURI(server.URL)))
}

func TestSocialFilter_FailClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewSocialFilter(config.FilterConfig{
		XCheck:      true,
		XFilterList: []string{"x.com/"},
	}, testHTTPClient(t), zap.NewNop())

	assert.False(t, f.Pass(context.Background(), oppWithURI(server.URL)), "fetch failure must reject")
	assert.False(t, f.Pass(context.Background(), oppWithURI("")), "empty uri must reject")
}

func TestSocialFilter_CachesBody(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("x.com/foo"))
	}))
	defer server.Close()

	f := NewSocialFilter(config.FilterConfig{
		XCheck:      true,
		XFilterList: []string{"x.com/"},
	}, testHTTPClient(t), zap.NewNop())

	require.True(t, f.Pass(context.Background(), oppWithURI(server.URL)))
	require.True(t, f.Pass(context.Background(), oppWithURI(server.URL)))
	assert.Equal(t, 1, hits, "second pass must hit the cache")
}

func TestTokenNameFilter(t *testing.T) {
	f := NewTokenNameFilter(config.FilterConfig{
		TokenNameCheck:      true,
		TokenNameFilterList: []string{"Foo", "Bar"},
	})

	pass := func(name string) bool {
		return f.Pass(context.Background(), model.Opportunity{
			Mint: model.MintEvent{Params: model.MintParams{Name: name}},
		})
	}

	assert.True(t, pass("Foo"))
	assert.True(t, pass("Bar"))
	assert.False(t, pass("foo"), "match is case sensitive")
	assert.False(t, pass("Foobar"), "match is exact, not prefix")
	assert.False(t, pass(""))
}

func TestDevBuyFilter_StrictlyGreater(t *testing.T) {
	f := NewDevBuyFilter(config.FilterConfig{
		DevBuyCheck: true,
		DevBuyLimit: 0.5,
	})

	pass := func(amountIn uint64) bool {
		return f.Pass(context.Background(), model.Opportunity{
			Params: model.BuyParams{AmountIn: amountIn},
		})
	}

	limit := utils.SolToLamports(0.5)
	assert.False(t, pass(limit), "exactly the threshold must reject")
	assert.True(t, pass(limit+1))
	assert.False(t, pass(limit-1))
	assert.False(t, pass(0))
}

func TestEvaluator_OrderAndShortCircuit(t *testing.T) {
	metadataCalled := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metadataCalled = true
		_, _ = w.Write([]byte("no social links here"))
	}))
	defer server.Close()

	evaluator := NewEvaluator(config.FilterConfig{
		XCheck:      true,
		XFilterList: []string{"x.com/"},
		// token name 过滤也会拒绝，但 social 在前应先短路
		TokenNameCheck:      true,
		TokenNameFilterList: []string{"Other"},
	}, testHTTPClient(t), zap.NewNop())

	ok, rejectedBy := evaluator.Pass(context.Background(), oppWithURI(server.URL))
	assert.False(t, ok)
	assert.Equal(t, "socialFilter", rejectedBy)
	assert.True(t, metadataCalled)
}

func TestEvaluator_DisabledFiltersSkipped(t *testing.T) {
	// 全部关闭时任何机会都通过，social 不应外呼
	evaluator := NewEvaluator(config.FilterConfig{}, testHTTPClient(t), zap.NewNop())

	ok, rejectedBy := evaluator.Pass(context.Background(), oppWithURI("http://127.0.0.1:0/unreachable"))
	assert.True(t, ok)
	assert.Empty(t, rejectedBy)
}

func TestEvaluator_AllEnabledAllPass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("follow us at t.me/foochat"))
	}))
	defer server.Close()

	evaluator := NewEvaluator(config.FilterConfig{
		XCheck:              true,
		XFilterList:         []string{"t.me/"},
		TokenNameCheck:      true,
		TokenNameFilterList: []string{"Foo"},
		DevBuyCheck:         true,
		DevBuyLimit:         0.5,
	}, testHTTPClient(t), zap.NewNop())

	opp := oppWithURI(server.URL)
	opp.Params = model.BuyParams{AmountIn: utils.SolToLamports(0.5) + 1}

	ok, rejectedBy := evaluator.Pass(context.Background(), opp)
	assert.True(t, ok)
	assert.Empty(t, rejectedBy)
}
