// Package iocache persists score bundles and scoring history.
package iocache

import (
	"sync"

	"github.com/huangsam/tcscore/internal/contract"
)

// CacheStoreManager manages the score cache and history stores.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	score        contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetScoreStore returns the score CacheStore, or nil when caching is disabled.
func (mgr *CacheStoreManager) GetScoreStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.score == nil {
		return nil
	}
	return mgr.score
}

// GetHistoryStore returns the HistoryStore, or nil when history is disabled.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.history == nil {
		return nil
	}
	return mgr.history
}
