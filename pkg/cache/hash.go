package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key of the form prefix:hex(sha256(parts)).
// The parts are JSON-encoded before hashing so that the key covers
// every option struct field; the full 256-bit digest keeps placement
// and field keys collision-free even across large option sweeps.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 digest of data. Used for content hashes
// of pipeline inputs (node and post collections, normalized positions).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
