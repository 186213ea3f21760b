package level

import "errors"

var (
	// ErrMalformedDocument is returned when the map header or a tileset is
	// missing a required attribute. No Map is produced.
	ErrMalformedDocument = errors.New("level: malformed map document")
	// ErrDecodeFailure is returned when a tile layer's data cannot be turned
	// into a grid of the declared size.
	ErrDecodeFailure = errors.New("level: tile data decode failed")
	// ErrTextureLoad is returned when a tileset image cannot be loaded.
	ErrTextureLoad = errors.New("level: texture load failed")
)
