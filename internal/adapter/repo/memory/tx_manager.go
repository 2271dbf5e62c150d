package memory

import (
	"context"
	"sync"
)

// TxManager serializes whole transactions; the repos guard individual map
// accesses themselves, so reads outside a transaction stay safe.
type TxManager struct {
	store *Store
	txMu  *sync.Mutex
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store, txMu: &sync.Mutex{}}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	return fn(ctx)
}
