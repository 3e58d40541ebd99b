package bot

import (
	"strings"

	"github.com/google/uuid"
)

// userIDPrefix marks bot-occupied seats so platform features (wallets,
// presence lookups) can skip them.
const userIDPrefix = "bot:"

var botNames = []string{
	"Scarab",
	"Anubis",
	"Bastet",
	"Sphinx",
	"Osiris",
	"Nefertiti",
}

// IsBot reports whether the given user id represents a bot seat.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, userIDPrefix)
}

// NewIdentity mints a fresh bot identity. The index picks a display name from
// the fixed pool.
func NewIdentity(index int) (id, name string) {
	name = botNames[((index%len(botNames))+len(botNames))%len(botNames)]
	return userIDPrefix + uuid.New().String(), name
}
