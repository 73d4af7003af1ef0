package store

import "github.com/heirloom-labs/heirloom"

// Aliases for all storage types, so that the implementations in this package
// and its subpackages can use shorter names.

type (
	ReadOnlyKVStore  = heirloom.ReadOnlyKVStore
	SetDeleter       = heirloom.SetDeleter
	KVStore          = heirloom.KVStore
	Batch            = heirloom.Batch
	Iterator         = heirloom.Iterator
	CacheableKVStore = heirloom.CacheableKVStore
	KVCacheWrap      = heirloom.KVCacheWrap
	CommitKVStore    = heirloom.CommitKVStore
	CommitID         = heirloom.CommitID
	Model            = heirloom.Model
)
