// Package cache provides the LRU cache that backs in-memory tile sources.
//
// Cache[K, V] is a mutex-guarded map with a doubly-linked recency list.
// Besides the usual Get/Set it supports a frame-scoped usage mark, so a
// tile source can drop every entry that was not touched while rendering
// the last frame:
//
//	c := cache.New[tile.ID, *tile.Tile](256)
//	c.ResetUsage()        // frame start
//	t, ok := c.Get(id)    // marks id as used
//	c.DropUnused()        // frame end
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
