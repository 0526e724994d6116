package broadcaster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"

	"github.com/ethereum-optimism/optimism/op-service/retry"
)

const (
	sendAttempts    = 5
	receiptAttempts = 60
)

var ErrReverted = errors.New("transaction reverted")

// TxSender is the slice of an ethclient the broadcaster needs.
type TxSender interface {
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// KeyedBroadcaster sends queued transactions strictly in order, blocking on
// each receipt before sending the next. A failed or reverted transaction
// aborts the broadcast; there is no recovery beyond a bounded retry of each
// individual RPC.
type KeyedBroadcaster struct {
	lgr    log.Logger
	client TxSender
	bcasts []Broadcast
}

func NewKeyedBroadcaster(lgr log.Logger, client TxSender) *KeyedBroadcaster {
	return &KeyedBroadcaster{
		lgr:    lgr,
		client: client,
	}
}

func (b *KeyedBroadcaster) Hook(bcast Broadcast) {
	b.bcasts = append(b.bcasts, bcast)
}

func (b *KeyedBroadcaster) Broadcast(ctx context.Context) ([]BroadcastResult, error) {
	bcasts := b.bcasts
	b.bcasts = nil

	results := make([]BroadcastResult, 0, len(bcasts))
	for _, bcast := range bcasts {
		res := b.broadcastOne(ctx, bcast)
		results = append(results, res)
		if res.Err != nil {
			return results, fmt.Errorf("failed to broadcast %s: %w", bcast.Name, res.Err)
		}
		b.lgr.Info("transaction confirmed",
			"name", bcast.Name,
			"txHash", res.TxHash,
			"block", res.Receipt.BlockNumber,
			"gasUsed", res.Receipt.GasUsed)
	}
	return results, nil
}

func (b *KeyedBroadcaster) broadcastOne(ctx context.Context, bcast Broadcast) BroadcastResult {
	res := BroadcastResult{
		Broadcast: bcast,
		TxHash:    bcast.Tx.Hash(),
	}

	b.lgr.Info("sending transaction", "name", bcast.Name, "txHash", res.TxHash, "nonce", bcast.Tx.Nonce())

	err := retry.Do0(ctx, sendAttempts, retry.Exponential(), func() error {
		return b.client.SendTransaction(ctx, bcast.Tx)
	})
	if err != nil {
		res.Err = fmt.Errorf("failed to send transaction: %w", err)
		return res
	}

	receipt, err := retry.Do(ctx, receiptAttempts, retry.Fixed(time.Second), func() (*types.Receipt, error) {
		return b.client.TransactionReceipt(ctx, res.TxHash)
	})
	if err != nil {
		res.Err = fmt.Errorf("failed to get receipt: %w", err)
		return res
	}

	res.Receipt = receipt
	if receipt.Status != types.ReceiptStatusSuccessful {
		res.Err = ErrReverted
	}
	return res
}
