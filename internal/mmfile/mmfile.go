package mmfile

import (
	"errors"

	"github.com/joshuapare/heapkit/internal/format"
)

// MaxImageSize is the largest image Map accepts: one full arena.
const MaxImageSize = format.MaxArenaSize

// ErrTooLarge indicates a file bigger than any arena can be.
var ErrTooLarge = errors.New("mmfile: file too large for an arena image")

func noop() error { return nil }
