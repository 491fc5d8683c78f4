package decoder

import (
	"bytes"
	"fmt"

	"launch-sniper/internal/sniper/model"

	"github.com/gagliardetto/solana-go"
)

// 各 venue 的 8 字节指令 discriminator，链上程序发布的固定常量，不可推导
var (
	BonkInitDisc  = []byte{175, 175, 109, 31, 13, 152, 155, 237}
	BonkBuyInDisc = []byte{250, 234, 13, 123, 213, 156, 19, 236}

	PumpCreateDisc = []byte{24, 30, 200, 40, 5, 28, 7, 119}
	PumpBuyDisc    = []byte{102, 6, 61, 18, 1, 218, 235, 234}

	MoonMintDisc = []byte{3, 44, 164, 184, 123, 13, 245, 179}
	MoonBuyDisc  = []byte{102, 6, 61, 18, 1, 218, 235, 234}
)

// 监控的 venue 程序地址
var (
	RaydiumLaunchpadProgramID = solana.MustPublicKeyFromBase58("LanMV9sAd7wArD4vJFi2qDdfnVhFxYSUg6eADduJ3uj")
	PumpFunProgramID          = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	MoonshotProgramID         = solana.MustPublicKeyFromBase58("MoonCVVNZFSYkqNXP6bxHLPL6QQJiMagDL3qcqUQTrG")
)

// DiscriminatorLen discriminator 固定宽度
const DiscriminatorLen = 8

// HasDiscriminator 判断指令负载是否以给定 discriminator 开头
func HasDiscriminator(data []byte, disc []byte) bool {
	return len(data) >= DiscriminatorLen && bytes.Equal(data[:DiscriminatorLen], disc)
}

// DecodeMintInitialize 解码 Launchpad initialize 指令负载（含 discriminator）。
// 布局：disc(8) + decimals(1) + name + symbol + uri + curve tag(1) + curve 字段 + vesting(3×u64)
func DecodeMintInitialize(data []byte) (model.MintEvent, error) {
	var event model.MintEvent
	offset := DiscriminatorLen

	params, err := decodeMintParams(data, &offset)
	if err != nil {
		return event, fmt.Errorf("mint params: %w", err)
	}

	curve, err := decodeCurveParams(data, &offset)
	if err != nil {
		return event, fmt.Errorf("curve params: %w", err)
	}

	vesting, err := decodeVestingParams(data, &offset)
	if err != nil {
		return event, fmt.Errorf("vesting params: %w", err)
	}

	event.Params = params
	event.Curve = curve
	event.Vesting = vesting
	return event, nil
}

func decodeMintParams(data []byte, offset *int) (model.MintParams, error) {
	var params model.MintParams
	var err error

	if params.Decimals, err = ReadU8(data, offset); err != nil {
		return params, err
	}
	if params.Name, err = ReadString(data, offset); err != nil {
		return params, err
	}
	if params.Symbol, err = ReadString(data, offset); err != nil {
		return params, err
	}
	if params.URI, err = ReadString(data, offset); err != nil {
		return params, err
	}
	return params, nil
}

// decodeCurveParams 按 tag 字节分派到三种曲线变体。
// 未知 tag 是该指令的解码错误，不允许回退到默认变体。
func decodeCurveParams(data []byte, offset *int) (model.CurveParams, error) {
	tag, err := ReadU8(data, offset)
	if err != nil {
		return nil, err
	}

	switch model.CurveKind(tag) {
	case model.CurveConstant:
		return decodeConstantCurve(data, offset)
	case model.CurveFixed:
		return decodeFixedCurve(data, offset)
	case model.CurveLinear:
		return decodeLinearCurve(data, offset)
	default:
		return nil, fmt.Errorf("unknown curve tag %d", tag)
	}
}

func decodeConstantCurve(data []byte, offset *int) (model.ConstantCurve, error) {
	var curve model.ConstantCurve
	var err error

	if curve.Supply, err = ReadU64(data, offset); err != nil {
		return curve, err
	}
	if curve.TotalBaseSell, err = ReadU64(data, offset); err != nil {
		return curve, err
	}
	if curve.TotalQuoteFundRaising, err = ReadU64(data, offset); err != nil {
		return curve, err
	}
	if curve.MigrateType, err = ReadU8(data, offset); err != nil {
		return curve, err
	}
	return curve, nil
}

func decodeFixedCurve(data []byte, offset *int) (model.FixedCurve, error) {
	var curve model.FixedCurve
	var err error

	if curve.Supply, err = ReadU64(data, offset); err != nil {
		return curve, err
	}
	if curve.TotalQuoteFundRaising, err = ReadU64(data, offset); err != nil {
		return curve, err
	}
	if curve.MigrateType, err = ReadU8(data, offset); err != nil {
		return curve, err
	}
	return curve, nil
}

func decodeLinearCurve(data []byte, offset *int) (model.LinearCurve, error) {
	var curve model.LinearCurve
	var err error

	if curve.Supply, err = ReadU64(data, offset); err != nil {
		return curve, err
	}
	if curve.TotalQuoteFundRaising, err = ReadU64(data, offset); err != nil {
		return curve, err
	}
	if curve.MigrateType, err = ReadU8(data, offset); err != nil {
		return curve, err
	}
	return curve, nil
}

func decodeVestingParams(data []byte, offset *int) (model.VestingParams, error) {
	var vesting model.VestingParams
	var err error

	if vesting.TotalLockedAmount, err = ReadU64(data, offset); err != nil {
		return vesting, err
	}
	if vesting.CliffPeriod, err = ReadU64(data, offset); err != nil {
		return vesting, err
	}
	if vesting.UnlockPeriod, err = ReadU64(data, offset); err != nil {
		return vesting, err
	}
	return vesting, nil
}

// DecodeBuyParams 解码 buy 指令负载（含 discriminator）：
// disc(8) + amount_in(u64) + minimum_amount_out(u64) + share_fee_rate(u64)，无长度前缀
func DecodeBuyParams(data []byte) (model.BuyParams, error) {
	var params model.BuyParams
	var err error
	offset := DiscriminatorLen

	if params.AmountIn, err = ReadU64(data, &offset); err != nil {
		return params, fmt.Errorf("amount_in: %w", err)
	}
	if params.MinimumAmountOut, err = ReadU64(data, &offset); err != nil {
		return params, fmt.Errorf("minimum_amount_out: %w", err)
	}
	if params.ShareFeeRate, err = ReadU64(data, &offset); err != nil {
		return params, fmt.Errorf("share_fee_rate: %w", err)
	}
	return params, nil
}

// EncodeMintInitialize 按 DecodeMintInitialize 的布局编码，测试与 fixture 构造使用
func EncodeMintInitialize(event model.MintEvent) ([]byte, error) {
	buf := append([]byte{}, BonkInitDisc...)
	buf = AppendU8(buf, event.Params.Decimals)
	buf = AppendString(buf, event.Params.Name)
	buf = AppendString(buf, event.Params.Symbol)
	buf = AppendString(buf, event.Params.URI)

	switch curve := event.Curve.(type) {
	case model.ConstantCurve:
		buf = AppendU8(buf, uint8(model.CurveConstant))
		buf = AppendU64(buf, curve.Supply)
		buf = AppendU64(buf, curve.TotalBaseSell)
		buf = AppendU64(buf, curve.TotalQuoteFundRaising)
		buf = AppendU8(buf, curve.MigrateType)
	case model.FixedCurve:
		buf = AppendU8(buf, uint8(model.CurveFixed))
		buf = AppendU64(buf, curve.Supply)
		buf = AppendU64(buf, curve.TotalQuoteFundRaising)
		buf = AppendU8(buf, curve.MigrateType)
	case model.LinearCurve:
		buf = AppendU8(buf, uint8(model.CurveLinear))
		buf = AppendU64(buf, curve.Supply)
		buf = AppendU64(buf, curve.TotalQuoteFundRaising)
		buf = AppendU8(buf, curve.MigrateType)
	default:
		return nil, fmt.Errorf("unsupported curve params %T", event.Curve)
	}

	buf = AppendU64(buf, event.Vesting.TotalLockedAmount)
	buf = AppendU64(buf, event.Vesting.CliffPeriod)
	buf = AppendU64(buf, event.Vesting.UnlockPeriod)
	return buf, nil
}

// EncodeBuyParams 按 DecodeBuyParams 的布局编码
func EncodeBuyParams(params model.BuyParams) []byte {
	buf := append([]byte{}, BonkBuyInDisc...)
	buf = AppendU64(buf, params.AmountIn)
	buf = AppendU64(buf, params.MinimumAmountOut)
	buf = AppendU64(buf, params.ShareFeeRate)
	return buf
}
