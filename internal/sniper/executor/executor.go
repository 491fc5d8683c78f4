package executor

import (
	"context"
	"fmt"

	"launch-sniper/internal/sniper/config"
	"launch-sniper/internal/sniper/decoder"
	"launch-sniper/internal/sniper/model"
	"launch-sniper/internal/sniper/writer"
	"launch-sniper/pkg/utils"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"go.uber.org/zap"
)

// SPL token 程序的 SyncNative 指令编号
const syncNativeInstruction = 17

// Executor 将通过过滤的机会参数化为本地买单：payer 换成自己的钱包、
// 用户 token 账户换成自己的 ATA、amount_in 换成配置的投入量，
// 组装完整指令序列后交给 Submitter。本模块不签名也不发送交易。
type Executor struct {
	wallet        solana.PublicKey
	spendLamports uint64
	submitter     writer.Submitter
	tl            *zap.Logger
}

func New(cfg config.TradeConfig, submitter writer.Submitter, logger *zap.Logger) (*Executor, error) {
	wallet, err := solana.PublicKeyFromBase58(cfg.WalletPubkey)
	if err != nil {
		return nil, fmt.Errorf("wallet pubkey: %w", err)
	}
	spend := utils.SolToLamports(cfg.BuySolAmount)
	if spend == 0 {
		return nil, fmt.Errorf("buy_sol_amount must be positive, got %f", cfg.BuySolAmount)
	}

	return &Executor{
		wallet:        wallet,
		spendLamports: spend,
		submitter:     submitter,
		tl:            logger,
	}, nil
}

// Dispatch 构造订单并提交。指令顺序固定：
// create base ATA → create quote ATA → transfer 到 quote ATA → SyncNative → buy
func (e *Executor) Dispatch(ctx context.Context, opp model.Opportunity) (model.Order, error) {
	accounts := opp.Accounts
	accounts.Payer = e.wallet

	baseATA, err := deriveATA(e.wallet, accounts.BaseTokenMint, accounts.BaseTokenProgram)
	if err != nil {
		return model.Order{}, fmt.Errorf("base ata: %w", err)
	}
	quoteATA, err := deriveATA(e.wallet, accounts.QuoteTokenMint, accounts.QuoteTokenProgram)
	if err != nil {
		return model.Order{}, fmt.Errorf("quote ata: %w", err)
	}
	accounts.UserBaseToken = baseATA
	accounts.UserQuoteToken = quoteATA

	params := model.BuyParams{AmountIn: e.spendLamports}

	instructions := []solana.Instruction{
		newCreateATAIdempotent(e.wallet, baseATA, e.wallet, accounts.BaseTokenMint, accounts.BaseTokenProgram),
		newCreateATAIdempotent(e.wallet, quoteATA, e.wallet, accounts.QuoteTokenMint, accounts.QuoteTokenProgram),
		system.NewTransferInstruction(e.spendLamports, e.wallet, quoteATA).Build(),
		newSyncNative(quoteATA, accounts.QuoteTokenProgram),
		newBuyInstruction(accounts, params),
	}

	order := model.Order{
		TxID:         opp.TxID,
		Payer:        e.wallet,
		Accounts:     accounts,
		Params:       params,
		Instructions: instructions,
	}

	if err := e.submitter.Submit(ctx, order); err != nil {
		return model.Order{}, fmt.Errorf("submit order: %w", err)
	}

	e.tl.Info("✅ buy order submitted",
		zap.String("tx", opp.TxID),
		zap.String("token", opp.Mint.Params.Name),
		zap.String("mint", accounts.BaseTokenMint.String()),
		zap.Uint64("amount_in", params.AmountIn),
	)
	return order, nil
}

// deriveATA 对任意 token 程序（含 token-2022）推导关联账户地址
func deriveATA(wallet, mint, tokenProgram solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{wallet.Bytes(), tokenProgram.Bytes(), mint.Bytes()},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	return addr, err
}

// newCreateATAIdempotent 构造 CreateIdempotent（编号 1）指令，账户已存在时为 no-op
func newCreateATAIdempotent(payer, ata, owner, mint, tokenProgram solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(
		solana.SPLAssociatedTokenAccountProgramID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(payer, true, true),
			solana.NewAccountMeta(ata, true, false),
			solana.NewAccountMeta(owner, false, false),
			solana.NewAccountMeta(mint, false, false),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
			solana.NewAccountMeta(tokenProgram, false, false),
		},
		[]byte{1},
	)
}

// newSyncNative 让 wSOL 账户余额与刚转入的 lamports 同步
func newSyncNative(ata, tokenProgram solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(
		tokenProgram,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(ata, true, false),
		},
		[]byte{syncNativeInstruction},
	)
}

// newBuyInstruction 按 Launchpad buy 的 15 账户布局组装指令
func newBuyInstruction(accounts model.BuyAccounts, params model.BuyParams) solana.Instruction {
	return solana.NewInstruction(
		decoder.RaydiumLaunchpadProgramID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(accounts.Payer, true, true),
			solana.NewAccountMeta(accounts.Authority, false, false),
			solana.NewAccountMeta(accounts.GlobalConfig, false, false),
			solana.NewAccountMeta(accounts.PlatformConfig, false, false),
			solana.NewAccountMeta(accounts.PoolState, true, false),
			solana.NewAccountMeta(accounts.UserBaseToken, true, false),
			solana.NewAccountMeta(accounts.UserQuoteToken, true, false),
			solana.NewAccountMeta(accounts.BaseVault, true, false),
			solana.NewAccountMeta(accounts.QuoteVault, true, false),
			solana.NewAccountMeta(accounts.BaseTokenMint, false, false),
			solana.NewAccountMeta(accounts.QuoteTokenMint, false, false),
			solana.NewAccountMeta(accounts.BaseTokenProgram, false, false),
			solana.NewAccountMeta(accounts.QuoteTokenProgram, false, false),
			solana.NewAccountMeta(accounts.EventAuthority, false, false),
			solana.NewAccountMeta(accounts.Program, false, false),
		},
		decoder.EncodeBuyParams(params),
	)
}
