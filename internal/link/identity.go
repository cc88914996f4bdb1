package link

import (
	"crypto/sha256"
	"encoding/hex"
)

// idLength is the hex-digit prefix taken from the digest. Fixed
// forever: changing it would re-key every player's stream identity.
const idLength = 12

const seedSeparator = "_"

// DeriveID computes the stable push/view identifier for a player.
// Same (room, username, character) always yields the same identifier,
// so removing and re-adding a player keeps their stream routing.
func DeriveID(room, username, character string) string {
	seed := room + seedSeparator + username + seedSeparator + character
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])[:idLength]
}
