package model

import (
	"encoding/base64"

	"launch-sniper/pkg/utils"
)

// OrderEvent 是 Order 投递到下游执行服务的 wire 格式
type OrderEvent struct {
	TxID         string             `json:"tx_id"`
	Payer        string             `json:"payer"`
	BaseMint     string             `json:"base_mint"`
	QuoteMint    string             `json:"quote_mint"`
	PoolState    string             `json:"pool_state"`
	AmountIn     uint64             `json:"amount_in"`
	AmountInSol  float64            `json:"amount_in_sol"`
	Instructions []InstructionEvent `json:"instructions"`
}

type InstructionEvent struct {
	ProgramID string         `json:"program_id"`
	Accounts  []AccountEvent `json:"accounts"`
	Data      string         `json:"data"` // base64
}

type AccountEvent struct {
	Pubkey   string `json:"pubkey"`
	Signer   bool   `json:"signer"`
	Writable bool   `json:"writable"`
}

// NewOrderEvent 将 Order 转换为 wire 格式，指令数据以 base64 编码
func NewOrderEvent(order Order) OrderEvent {
	event := OrderEvent{
		TxID:        order.TxID,
		Payer:       order.Payer.String(),
		BaseMint:    order.Accounts.BaseTokenMint.String(),
		QuoteMint:   order.Accounts.QuoteTokenMint.String(),
		PoolState:   order.Accounts.PoolState.String(),
		AmountIn:    order.Params.AmountIn,
		AmountInSol: utils.LamportsToSol(order.Params.AmountIn),
	}

	for _, ix := range order.Instructions {
		data, err := ix.Data()
		if err != nil {
			continue
		}
		ixEvent := InstructionEvent{
			ProgramID: ix.ProgramID().String(),
			Data:      base64.StdEncoding.EncodeToString(data),
		}
		for _, acc := range ix.Accounts() {
			ixEvent.Accounts = append(ixEvent.Accounts, AccountEvent{
				Pubkey:   acc.PublicKey.String(),
				Signer:   acc.IsSigner,
				Writable: acc.IsWritable,
			})
		}
		event.Instructions = append(event.Instructions, ixEvent)
	}

	return event
}
