package model

import (
	"github.com/gagliardetto/solana-go"
)

// Opportunity 同一笔交易中同时出现 mint 事件与 buy 事件时产生的候选机会。
// 由 extractor 构造一次，经过滤器后交给 executor，不做持久化。
type Opportunity struct {
	TxID     string
	Mint     MintEvent
	Accounts BuyAccounts
	Params   BuyParams
}

// Order 本地参数化后的下单指令集，所有权移交给提交边界
type Order struct {
	TxID         string
	Payer        solana.PublicKey
	Accounts     BuyAccounts
	Params       BuyParams
	Instructions []solana.Instruction
}
