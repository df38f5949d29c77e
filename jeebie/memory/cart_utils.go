package memory

import (
	"strings"
)

// cleanGameboyTitle turns the raw title field into a printable string.
// The field is NUL padded and, on later cartridges, shares its tail with the
// manufacturer code and CGB flag, so decoding stops at the first byte that is
// not printable ASCII.
func cleanGameboyTitle(titleBytes []byte) string {
	var sb strings.Builder
	for _, b := range titleBytes {
		if b == 0 || b < 0x20 || b > 0x7E {
			break
		}
		sb.WriteByte(b)
	}

	title := strings.TrimSpace(sb.String())
	if title == "" {
		return "(Untitled)"
	}
	return title
}
