package broadcaster

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Broadcast is a single signed transaction queued for sending, tagged with a
// human-readable name for logs and results.
type Broadcast struct {
	Name string             `json:"name"`
	Tx   *types.Transaction `json:"tx"`
}

type Broadcaster interface {
	Broadcast(ctx context.Context) ([]BroadcastResult, error)
	Hook(bcast Broadcast)
}

type BroadcastResult struct {
	Broadcast Broadcast      `json:"broadcast"`
	TxHash    common.Hash    `json:"txHash"`
	Receipt   *types.Receipt `json:"receipt"`
	Err       error          `json:"-"`
}
