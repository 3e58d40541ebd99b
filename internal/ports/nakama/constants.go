package nakama

// RpcQuickMatch is the Nakama RPC id clients call to find or create a
// lobby-capable match.
const RpcQuickMatch = "quick_match"

// MatchName is the authoritative match handler name registered with Nakama.
const MatchName = "ratscrew_match"

// tickRate is the match loop frequency in ticks per second.
const tickRate = 10

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpPlayCard     int64 = 1
	OpSlapPile     int64 = 2
	OpPlayerReady  int64 = 3
	OpChangeName   int64 = 4
	OpSetSettings  int64 = 5
	OpPlayerAction int64 = 6

	// Server -> Client events
	OpPlayerJoined     int64 = 101
	OpPlayerLeft       int64 = 102
	OpReadyChanged     int64 = 103
	OpNameChanged      int64 = 104
	OpGameStarted      int64 = 105
	OpCardPlayed       int64 = 106
	OpChallengeUpdated int64 = 107
	OpPileAwarded      int64 = 108
	OpSlapResult       int64 = 109
	OpVoteStarted      int64 = 110
	OpVoteSubmitted    int64 = 111
	OpVoteResolved     int64 = 112
	OpSettingsChanged  int64 = 113
	OpGameEnded        int64 = 114
	OpStateSnapshot    int64 = 115
	OpError            int64 = 120
)
