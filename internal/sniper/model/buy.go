package model

import (
	"github.com/gagliardetto/solana-go"
)

// BuyAccountCount Launchpad buy 指令固定的账户数量
const BuyAccountCount = 15

// BuyAccounts Launchpad buy 指令的 15 个账户，顺序由链上程序定义，不可调整
type BuyAccounts struct {
	Payer             solana.PublicKey // #1
	Authority         solana.PublicKey // #2
	GlobalConfig      solana.PublicKey // #3
	PlatformConfig    solana.PublicKey // #4
	PoolState         solana.PublicKey // #5
	UserBaseToken     solana.PublicKey // #6
	UserQuoteToken    solana.PublicKey // #7
	BaseVault         solana.PublicKey // #8
	QuoteVault        solana.PublicKey // #9
	BaseTokenMint     solana.PublicKey // #10
	QuoteTokenMint    solana.PublicKey // #11
	BaseTokenProgram  solana.PublicKey // #12
	QuoteTokenProgram solana.PublicKey // #13
	EventAuthority    solana.PublicKey // #14
	Program           solana.PublicKey // #15
}

// BuyParams buy 指令负载中紧跟 discriminator 的三个 u64
type BuyParams struct {
	AmountIn         uint64
	MinimumAmountOut uint64
	ShareFeeRate     uint64
}
