package memo

import (
	"encoding/hex"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/zeebo/blake3"

	"github.com/mithrel/confchat/pkg/richtext"
)

// Digest returns the hex BLAKE3 hash of a message body. Options that change
// parsing are folded in so differently configured parsers never share keys.
func Digest(text string, flushOpen bool) string {
	h := blake3.New()
	if flushOpen {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Cache memoizes parse results for repeated renders of the same text.
// Oldest entries are evicted first once size is reached.
type Cache struct {
	mu        sync.RWMutex
	parser    *richtext.Parser
	flushOpen bool
	size      int
	entries   *linkedhashmap.Map // digest -> []richtext.Block, insertion ordered
	hits      uint64
	misses    uint64
}

// New returns a cache of at most size entries. size <= 0 disables caching.
func New(size int, flushOpen bool) *Cache {
	return &Cache{
		parser:    richtext.NewParser(richtext.FlushUnterminated(flushOpen)),
		flushOpen: flushOpen,
		size:      size,
		entries:   linkedhashmap.New(),
	}
}

// Parse returns the blocks for text and its digest.
// The returned slice is shared; callers must not modify it.
func (c *Cache) Parse(text string) ([]richtext.Block, string) {
	key := Digest(text, c.flushOpen)
	c.mu.RLock()
	cached, ok := c.entries.Get(key)
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return cached.([]richtext.Block), key
	}

	blocks := c.parser.Parse(text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	if c.size <= 0 {
		return blocks, key
	}
	if _, ok := c.entries.Get(key); !ok && c.entries.Size() >= c.size {
		it := c.entries.Iterator()
		if it.First() {
			c.entries.Remove(it.Key())
		}
	}
	c.entries.Put(key, blocks)
	return blocks, key
}

// Stats returns hit and miss counts and the number of cached entries.
func (c *Cache) Stats() (hits, misses uint64, entries int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, c.entries.Size()
}
