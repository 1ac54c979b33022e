// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used (LRU) cache
of rendered strings.

Keys are strings. The cache evicts the least recently used entry when it reaches capacity.
When created with compression enabled via [New], values are stored zstd-compressed
whenever that saves space and are transparently decompressed by [Cache.Get].
*/
package lrucache

import (
	"container/list"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
)

// ErrInvalidSize is returned by [New] for a non-positive capacity.
var ErrInvalidSize = errors.New("must provide a positive size")

// Cache is a fixed-capacity, least-recently-used cache that is safe for concurrent use.
// Instances must be constructed with [New]; the zero value is not ready for use.
type Cache struct {
	size      int
	evictList *list.List               // front is the most recently used entry
	items     map[string]*list.Element // values are *entry
	lock      sync.RWMutex

	// nil when compression is disabled
	enc *zstd.Encoder
	dec *zstd.Decoder

	hits, misses atomic.Uint64
}

type entry struct {
	key        string
	value      string // zstd frame when compressed
	compressed bool
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len    int    `json:"len"`
	Size   int    `json:"size"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// New creates a cache holding at most size entries.
//
// If compress is true, values are stored compressed when this reduces their
// size.
func New(size int, compress bool) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element, size),
	}

	if compress {
		// Nil writer and reader: only EncodeAll and DecodeAll are used, and
		// both are safe for concurrent calls.
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, err
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}

		c.enc, c.dec = enc, dec
	}

	return c, nil
}

// Key joins parts into a cache key. Parts may contain any text; distinct part
// lists give distinct keys.
func Key(parts ...string) string {
	var b strings.Builder

	for _, p := range parts {
		// Escape the separator so that ("a\x00", "b") and ("a", "\x00b") differ.
		b.WriteString(strings.ReplaceAll(p, "\x00", "\x00\x01"))
		b.WriteString("\x00\x00")
	}

	return b.String()
}

// Add adds or updates the value for key, making it the most recently used.
//
// If the cache is at capacity, the least recently used item is evicted.
// Add reports whether an eviction occurred.
func (c *Cache) Add(key, value string) bool {
	stored, compressed := c.pack(value)

	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)

		ent := el.Value.(*entry)
		ent.value, ent.compressed = stored, compressed

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, value: stored, compressed: compressed})

	if c.evictList.Len() <= c.size {
		return false
	}

	c.removeElement(c.evictList.Back())

	return true
}

// Get retrieves the value for key and marks it as most recently used.
func (c *Cache) Get(key string) (string, bool) {
	c.lock.Lock()

	el, ok := c.items[key]
	if !ok {
		c.lock.Unlock()
		c.misses.Add(1)

		return "", false
	}

	c.evictList.MoveToFront(el)
	ent := *el.Value.(*entry)

	c.lock.Unlock()

	v, ok := c.unpack(ent)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}

	return v, ok
}

// GetOrAdd returns the cached value for key, or calls render, stores its
// result and returns it. Concurrent misses on one key may each call render.
func (c *Cache) GetOrAdd(key string, render func() string) string {
	if v, ok := c.Get(key); ok {
		return v
	}

	v := render()
	c.Add(key, v)

	return v
}

// Remove deletes key, reporting whether it was present.
func (c *Cache) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}

	return ok
}

// Keys returns all keys in the cache, from the oldest to the newest.
func (c *Cache) Keys() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	keys := make([]string, 0, len(c.items))

	for el := c.evictList.Back(); el != nil; el = el.Prev() {
		keys = append(keys, el.Value.(*entry).key)
	}

	return keys
}

// Len returns the current number of items in the cache.
func (c *Cache) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.evictList.Len()
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Len:    c.Len(),
		Size:   c.size,
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

func (c *Cache) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}

// pack compresses value when enabled and worthwhile. It runs without the lock.
func (c *Cache) pack(value string) (string, bool) {
	if c.enc == nil || value == "" {
		return value, false
	}

	frame := c.enc.EncodeAll([]byte(value), nil)
	if len(frame) >= len(value) {
		return value, false
	}

	return string(frame), true
}

// unpack reverses pack. A frame that fails to decode is reported as missing.
func (c *Cache) unpack(ent entry) (string, bool) {
	if !ent.compressed {
		return ent.value, true
	}

	decoded, err := c.dec.DecodeAll([]byte(ent.value), nil)
	if err != nil {
		return "", false
	}

	return string(decoded), true
}
