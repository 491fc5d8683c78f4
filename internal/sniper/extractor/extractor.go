package extractor

import (
	"fmt"
	"runtime/debug"

	"launch-sniper/internal/sniper/decoder"
	"launch-sniper/internal/sniper/model"
	"launch-sniper/internal/sniper/monitor"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"go.uber.org/zap"
)

// ExtractTransaction 从一条流更新中取出账户表、指令列表与交易 ID。
// 非交易类型的更新或嵌套结构缺失时返回 ok=false，由调用方直接跳过。
// 账户表 = 静态消息 keys ++ loaded writable ++ loaded readonly，指令中的
// 账户索引只在这个拼接顺序下有意义。
func ExtractTransaction(update *pb.SubscribeUpdate) ([]solana.PublicKey, []*pb.CompiledInstruction, string, bool) {
	txUpdate := update.GetTransaction()
	if txUpdate == nil {
		return nil, nil, "", false
	}

	info := txUpdate.GetTransaction()
	if info == nil {
		return nil, nil, "", false
	}
	tx := info.GetTransaction()
	meta := info.GetMeta()
	if tx == nil || meta == nil {
		return nil, nil, "", false
	}
	msg := tx.GetMessage()
	if msg == nil {
		return nil, nil, "", false
	}

	accountKeys := parseKeys(msg.GetAccountKeys())
	if len(accountKeys) == 0 {
		return nil, nil, "", false
	}
	accountKeys = append(accountKeys, parseKeys(meta.GetLoadedWritableAddresses())...)
	accountKeys = append(accountKeys, parseKeys(meta.GetLoadedReadonlyAddresses())...)

	txID := base58.Encode(info.GetSignature())
	return accountKeys, msg.GetInstructions(), txID, true
}

// parseKeys 逐个解析 32 字节账户，长度非法的单个 key 跳过不影响其它
func parseKeys(raw [][]byte) []solana.PublicKey {
	keys := make([]solana.PublicKey, 0, len(raw))
	for _, keyBytes := range raw {
		if len(keyBytes) != solana.PublicKeyLength {
			continue
		}
		keys = append(keys, solana.PublicKeyFromBytes(keyBytes))
	}
	return keys
}

// Extractor 在单笔交易的指令列表上识别 mint+buy 机会
type Extractor struct {
	tl *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	return &Extractor{tl: logger}
}

// Extract 按交易内顺序扫描指令，产出至多一个机会。
// mint 与 buy 各自取最后一次匹配（last write wins，明确策略而非巧合），
// 两者都出现时才构成机会。单条指令的解码失败只丢弃该指令。
func (e *Extractor) Extract(txID string, ixs []*pb.CompiledInstruction, accountKeys []solana.PublicKey) (opp model.Opportunity, found bool) {
	// 解码逻辑不应 panic，万一出现也只损失这一笔交易
	defer func() {
		if r := recover(); r != nil {
			e.tl.Error("❌ Extract panic", zap.String("tx", txID), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			found = false
		}
	}()

	var mint *model.MintEvent
	var accounts *model.BuyAccounts
	var params *model.BuyParams

	for ixIndex, ix := range ixs {
		data := ix.GetData()
		if len(data) < decoder.DiscriminatorLen {
			continue
		}
		programIdx := int(ix.GetProgramIdIndex())
		if programIdx >= len(accountKeys) {
			e.tl.Debug("⚠️ program id index out of bounds", zap.String("tx", txID), zap.Int("ix", ixIndex), zap.Int("index", programIdx))
			continue
		}
		programID := accountKeys[programIdx]

		switch {
		case decoder.HasDiscriminator(data, decoder.BonkInitDisc) && programID.Equals(decoder.RaydiumLaunchpadProgramID):
			event, err := decoder.DecodeMintInitialize(data)
			if err != nil {
				monitor.DecodeErrors.WithLabelValues("mint_initialize").Inc()
				e.tl.Warn("❌ mint initialize decode failed", zap.String("tx", txID), zap.Int("ix", ixIndex), zap.Error(err))
				continue
			}
			mint = &event

		case decoder.HasDiscriminator(data, decoder.BonkBuyInDisc) && programID.Equals(decoder.RaydiumLaunchpadProgramID):
			buyAccounts, err := resolveBuyAccounts(ix, accountKeys)
			if err != nil {
				monitor.DecodeErrors.WithLabelValues("buy_accounts").Inc()
				e.tl.Warn("❌ buy account resolution failed", zap.String("tx", txID), zap.Int("ix", ixIndex), zap.Error(err))
				continue
			}
			buyParams, err := decoder.DecodeBuyParams(data)
			if err != nil {
				monitor.DecodeErrors.WithLabelValues("buy_params").Inc()
				e.tl.Warn("❌ buy params decode failed", zap.String("tx", txID), zap.Int("ix", ixIndex), zap.Error(err))
				continue
			}
			accounts = &buyAccounts
			params = &buyParams
		}
	}

	if mint == nil || accounts == nil || params == nil {
		return model.Opportunity{}, false
	}

	return model.Opportunity{
		TxID:     txID,
		Mint:     *mint,
		Accounts: *accounts,
		Params:   *params,
	}, true
}

// resolveBuyAccounts 将 buy 指令的前 15 个账户索引按固定角色顺序解析为账户。
// 索引列表不足 15 个或任一引用越界时整条指令作废。
func resolveBuyAccounts(ix *pb.CompiledInstruction, accountKeys []solana.PublicKey) (model.BuyAccounts, error) {
	indices := ix.GetAccounts()
	if len(indices) < model.BuyAccountCount {
		return model.BuyAccounts{}, fmt.Errorf("expected %d account indices, got %d", model.BuyAccountCount, len(indices))
	}

	for _, idx := range indices {
		if int(idx) >= len(accountKeys) {
			return model.BuyAccounts{}, fmt.Errorf("account index %d out of bounds (table size %d)", idx, len(accountKeys))
		}
	}

	at := func(slot int) solana.PublicKey {
		return accountKeys[indices[slot]]
	}

	return model.BuyAccounts{
		Payer:             at(0),
		Authority:         at(1),
		GlobalConfig:      at(2),
		PlatformConfig:    at(3),
		PoolState:         at(4),
		UserBaseToken:     at(5),
		UserQuoteToken:    at(6),
		BaseVault:         at(7),
		QuoteVault:        at(8),
		BaseTokenMint:     at(9),
		QuoteTokenMint:    at(10),
		BaseTokenProgram:  at(11),
		QuoteTokenProgram: at(12),
		EventAuthority:    at(13),
		Program:           at(14),
	}, nil
}
