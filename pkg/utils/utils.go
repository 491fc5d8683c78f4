package utils

import (
	"github.com/shopspring/decimal"
)

// LamportsPerSol 1 SOL = 10^9 lamports
const LamportsPerSol = 1_000_000_000

// SolToLamports 将 SOL 数量转换为 lamports，避免浮点误差
func SolToLamports(sol float64) uint64 {
	lamports := decimal.NewFromFloat(sol).Mul(decimal.NewFromInt(LamportsPerSol))
	return uint64(lamports.IntPart())
}

// LamportsToSol 将 lamports 转换为 SOL 数量（仅用于日志展示）
func LamportsToSol(lamports uint64) float64 {
	sol, _ := decimal.NewFromUint64(lamports).Div(decimal.NewFromInt(LamportsPerSol)).Float64()
	return sol
}
