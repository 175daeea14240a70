package tile

// Source provides tiles to the texture mapper.
//
// LoadTile returns the tile at (col, row, level). The returned handle stays
// valid at least until the next Flush or CleanupCache call; the mapper never
// frees it.
//
// The per-frame cache protocol is:
//
//	src.ResetCache()   // frame start: nothing is marked as in use
//	src.LoadTile(...)  // any number of loads during the frame
//	src.CleanupCache() // frame end: tiles not loaded this frame may go
//
// Flush drops every cached tile. The mapper calls it when the tile level
// changes, because tiles of the old level are no longer addressable.
type Source interface {
	// TileWidth returns the tile width in pixels. It is the same for every
	// tile and level.
	TileWidth() int

	// TileHeight returns the tile height in pixels.
	TileHeight() int

	// LoadTile returns the tile at (col, row, level).
	LoadTile(col, row, level int) (*Tile, error)

	// Flush drops all cached tiles.
	Flush()

	// ResetCache clears the in-use marks of all cached tiles.
	ResetCache()

	// CleanupCache releases the tiles that were not loaded since the last
	// ResetCache.
	CleanupCache()
}
