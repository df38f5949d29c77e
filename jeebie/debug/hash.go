package debug

import (
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/valerio/jeebie-core/jeebie/video"
)

// FrameHash fingerprints a frame by its shades, so two frames hash equal
// exactly when they look the same.
func FrameHash(frame *video.FrameBuffer) uint64 {
	return xxhash.Sum64(frame.ToGrayscale())
}

// FrameHashString is FrameHash as fixed width hex.
func FrameHashString(frame *video.FrameBuffer) string {
	return fmt.Sprintf("%016x", FrameHash(frame))
}
