package model

// MintParams 代币发行基础参数
type MintParams struct {
	Decimals uint8
	Name     string
	Symbol   string
	URI      string
}

// CurveKind 发射曲线类型标签，对应指令负载中的单字节 tag
type CurveKind uint8

const (
	CurveConstant CurveKind = 0
	CurveFixed    CurveKind = 1
	CurveLinear   CurveKind = 2
)

// CurveParams 发射曲线参数（tagged union）
type CurveParams interface {
	Kind() CurveKind
}

type ConstantCurve struct {
	Supply                uint64
	TotalBaseSell         uint64
	TotalQuoteFundRaising uint64
	MigrateType           uint8
}

func (ConstantCurve) Kind() CurveKind { return CurveConstant }

type FixedCurve struct {
	Supply                uint64
	TotalQuoteFundRaising uint64
	MigrateType           uint8
}

func (FixedCurve) Kind() CurveKind { return CurveFixed }

type LinearCurve struct {
	Supply                uint64
	TotalQuoteFundRaising uint64
	MigrateType           uint8
}

func (LinearCurve) Kind() CurveKind { return CurveLinear }

// VestingParams 锁仓参数
type VestingParams struct {
	TotalLockedAmount uint64
	CliffPeriod       uint64
	UnlockPeriod      uint64
}

// MintEvent 一次代币发射的完整解码结果
type MintEvent struct {
	Params  MintParams
	Curve   CurveParams
	Vesting VestingParams
}
