package editor

import "github.com/google/uuid"

// Id prefixes per node layer.
const (
	prefixRow     = "row"
	prefixColumn  = "col"
	prefixElement = "el"
)

// NewID returns a fresh node identifier made of prefix and a UUIDv7, which
// carries a millisecond timestamp followed by random bits.
func NewID(prefix string) string {
	return prefix + "-" + uuid.Must(uuid.NewV7()).String()
}
