package decoder

import (
	"testing"

	"launch-sniper/internal/sniper/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMintInitialize_ConstantCurve(t *testing.T) {
	// disc + decimals + name/symbol/uri + tag(0) + supply/totalBaseSell/totalQuoteRaise + migrate + vesting
	payload := append([]byte{}, BonkInitDisc...)
	payload = AppendU8(payload, 6)
	payload = AppendString(payload, "Foo")
	payload = AppendString(payload, "FOO")
	payload = AppendString(payload, "https://example.com/foo.json")
	payload = AppendU8(payload, 0)
	payload = AppendU64(payload, 1_000_000_000)
	payload = AppendU64(payload, 800_000_000)
	payload = AppendU64(payload, 85_000_000_000)
	payload = AppendU8(payload, 1)
	payload = AppendU64(payload, 50_000)
	payload = AppendU64(payload, 3600)
	payload = AppendU64(payload, 86400)

	event, err := DecodeMintInitialize(payload)
	require.NoError(t, err)

	assert.Equal(t, uint8(6), event.Params.Decimals)
	assert.Equal(t, "Foo", event.Params.Name)
	assert.Equal(t, "FOO", event.Params.Symbol)
	assert.Equal(t, "https://example.com/foo.json", event.Params.URI)

	curve, ok := event.Curve.(model.ConstantCurve)
	require.True(t, ok, "expected constant curve, got %T", event.Curve)
	assert.Equal(t, uint64(1_000_000_000), curve.Supply)
	assert.Equal(t, uint64(800_000_000), curve.TotalBaseSell)
	assert.Equal(t, uint64(85_000_000_000), curve.TotalQuoteFundRaising)
	assert.Equal(t, uint8(1), curve.MigrateType)

	assert.Equal(t, uint64(50_000), event.Vesting.TotalLockedAmount)
	assert.Equal(t, uint64(3600), event.Vesting.CliffPeriod)
	assert.Equal(t, uint64(86400), event.Vesting.UnlockPeriod)
}

func TestDecodeMintInitialize_RoundTrip(t *testing.T) {
	vesting := model.VestingParams{TotalLockedAmount: 1, CliffPeriod: 2, UnlockPeriod: 3}
	params := model.MintParams{Decimals: 9, Name: "Bar", Symbol: "BAR", URI: "ipfs://bar"}

	cases := []struct {
		name  string
		curve model.CurveParams
	}{
		{"constant", model.ConstantCurve{Supply: 10, TotalBaseSell: 20, TotalQuoteFundRaising: 30, MigrateType: 0}},
		{"fixed", model.FixedCurve{Supply: 11, TotalQuoteFundRaising: 31, MigrateType: 1}},
		{"linear", model.LinearCurve{Supply: 12, TotalQuoteFundRaising: 32, MigrateType: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			original := model.MintEvent{Params: params, Curve: tc.curve, Vesting: vesting}

			encoded, err := EncodeMintInitialize(original)
			require.NoError(t, err)

			decoded, err := DecodeMintInitialize(encoded)
			require.NoError(t, err)
			assert.Equal(t, original, decoded)

			// 再编码必须逐字节一致
			reencoded, err := EncodeMintInitialize(decoded)
			require.NoError(t, err)
			assert.Equal(t, encoded, reencoded)
		})
	}
}

func TestDecodeMintInitialize_UnknownCurveTag(t *testing.T) {
	payload := append([]byte{}, BonkInitDisc...)
	payload = AppendU8(payload, 6)
	payload = AppendString(payload, "Foo")
	payload = AppendString(payload, "FOO")
	payload = AppendString(payload, "uri")
	payload = AppendU8(payload, 7) // 未定义的曲线类型

	_, err := DecodeMintInitialize(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown curve tag")
}

func TestDecodeMintInitialize_TruncatedVesting(t *testing.T) {
	payload := append([]byte{}, BonkInitDisc...)
	payload = AppendU8(payload, 6)
	payload = AppendString(payload, "Foo")
	payload = AppendString(payload, "FOO")
	payload = AppendString(payload, "uri")
	payload = AppendU8(payload, 1)
	payload = AppendU64(payload, 10)
	payload = AppendU64(payload, 20)
	payload = AppendU8(payload, 0)
	// vesting 缺失

	_, err := DecodeMintInitialize(payload)
	require.Error(t, err)
}

func TestDecodeBuyParams(t *testing.T) {
	payload := EncodeBuyParams(model.BuyParams{AmountIn: 1_000_000, MinimumAmountOut: 0, ShareFeeRate: 0})

	params, err := DecodeBuyParams(payload)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), params.AmountIn)
	assert.Equal(t, uint64(0), params.MinimumAmountOut)
	assert.Equal(t, uint64(0), params.ShareFeeRate)
}

func TestDecodeBuyParams_ShortPayloads(t *testing.T) {
	full := EncodeBuyParams(model.BuyParams{AmountIn: 1, MinimumAmountOut: 2, ShareFeeRate: 3})

	// 任何不足 8+24 字节的负载都必须报错而不是越界
	for length := 0; length < len(full); length++ {
		_, err := DecodeBuyParams(full[:length])
		assert.Error(t, err, "payload length %d", length)
	}

	_, err := DecodeBuyParams(full)
	assert.NoError(t, err)
}

func TestHasDiscriminator(t *testing.T) {
	payload := EncodeBuyParams(model.BuyParams{AmountIn: 1})

	assert.True(t, HasDiscriminator(payload, BonkBuyInDisc))
	assert.False(t, HasDiscriminator(payload, BonkInitDisc))
	assert.False(t, HasDiscriminator(payload[:4], BonkBuyInDisc))
}
