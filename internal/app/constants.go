package app

// MinPlayersToStart is the minimum number of connected players required
// before an all-ready lobby deals a game.
const MinPlayersToStart = 2

// DefaultMaxPlayers caps lobby size when no configuration is supplied.
const DefaultMaxPlayers = 6

// DefaultDeckCount is the number of combined 52-card decks dealt per game.
const DefaultDeckCount = 1
