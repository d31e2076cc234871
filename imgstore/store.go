// Package imgstore deduplicates identical PNG-encoded images by content
// hash. The hash-to-filename lookup is a write-once sharded map: shard
// count and per-shard locking follow the teacher's ShardedCache idiom
// (its getShard shape; that cache is not part of this module), specialized here to this
// store's one concrete use — a SHA-256-hex key mapping to an assigned
// image filename — rather than reusing the generic cache package, since
// spec.md §4.7 step 8 needs no LRU eviction, no stats, and no value type
// beyond a string: every stored image must survive for the whole compile.
package imgstore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"sync"
)

// shardCount mirrors the teacher's DefaultShardCount (this module's cache
// package has no such constant): a power of two sized to spread lock
// contention on the hash-dedup fast path across concurrent callers.
const shardCount = 16

type hashShard struct {
	mu     sync.Mutex
	byHash map[string]string // sha256 hex -> assigned name
}

// UniqueImageStore content-addresses PNG byte slices by SHA-256 and
// assigns each distinct image exactly one filename, returning the
// existing filename for a repeat of already-seen bytes.
type UniqueImageStore struct {
	shards [shardCount]*hashShard

	// mu guards the store-wide name/bytes bookkeeping below: filename
	// uniqueness must be checked globally, since two different hashes
	// landing in two different shards could otherwise both claim the
	// same suggested name.
	mu      sync.Mutex
	names   map[string]bool   // assigned names already in use
	written map[string][]byte // name -> bytes, for callers that flush later
}

// New returns an empty store.
func New() *UniqueImageStore {
	s := &UniqueImageStore{
		names:   make(map[string]bool),
		written: make(map[string][]byte),
	}
	for i := range s.shards {
		s.shards[i] = &hashShard{byHash: make(map[string]string)}
	}
	return s
}

func (s *UniqueImageStore) shardFor(key string) *hashShard {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key)) // fnv.Write never returns an error
	return s.shards[h.Sum64()&(shardCount-1)]
}

// AddImage returns the filename to use for png, reusing an existing
// filename if identical bytes were already stored; suggestedName is
// used verbatim on first insertion, with a "_n" suffix appended on a
// name collision against different bytes (spec.md §4.7 step 8).
func (s *UniqueImageStore) AddImage(suggestedName string, png []byte) string {
	sum := sha256.Sum256(png)
	key := hex.EncodeToString(sum[:])

	shard := s.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if name, ok := shard.byHash[key]; ok {
		return name
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := suggestedName
	for n := 1; s.names[name]; n++ {
		name = fmt.Sprintf("%s_%d", suggestedName, n)
	}
	s.names[name] = true
	s.written[name] = png
	shard.byHash[key] = name
	return name
}

// Files returns every stored (name, bytes) pair, for writing to disk or
// a zip archive.
func (s *UniqueImageStore) Files() map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]byte, len(s.written))
	for k, v := range s.written {
		out[k] = v
	}
	return out
}

// Len reports the number of distinct images stored.
func (s *UniqueImageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.written)
}
