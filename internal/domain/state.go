package domain

// Phase represents the lifecycle stage of a game session.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join and ready up.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active game state.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a winner has been declared.
	PhaseEnded Phase = "ended"
)

// GameSettings holds the between-round configurable session parameters.
type GameSettings struct {
	MaxPlayers int
	Rules      []SlapRule
}

// Game is the session aggregate: it owns the player list (list order is turn
// order), the central pile, the turn pointer and the transient challenge and
// vote sub-states. All shared mutation goes through this type's accessors.
type Game struct {
	Phase      Phase
	Players    []*Player
	Pile       []Card
	CurrentIdx int
	WinnerID   string
	Settings   GameSettings
	Challenge  *FaceCardChallenge
	Vote       *VoteState
	Log        EventLog
}

// NewGame creates an empty lobby-phase session with the given settings.
func NewGame(settings GameSettings) *Game {
	return &Game{
		Phase:    PhaseLobby,
		Settings: settings,
	}
}

// PlayerByID returns the player for a connection identity, or nil.
func (g *Game) PlayerByID(userID string) *Player {
	for _, pl := range g.Players {
		if pl.UserID == userID {
			return pl
		}
	}
	return nil
}

// AddPlayer appends a player to the end of the turn order.
func (g *Game) AddPlayer(p *Player) {
	g.Players = append(g.Players, p)
}

// RemovePlayer deletes a player from the turn order. The turn pointer is kept
// on the same player where possible.
func (g *Game) RemovePlayer(userID string) bool {
	for i, pl := range g.Players {
		if pl.UserID == userID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			if g.CurrentIdx > i {
				g.CurrentIdx--
			}
			if g.CurrentIdx >= len(g.Players) {
				g.CurrentIdx = 0
			}
			return true
		}
	}
	return false
}

// CurrentPlayer returns the player whose turn it is, or nil before any player
// has joined.
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	if g.CurrentIdx < 0 || g.CurrentIdx >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentIdx]
}

// SetTurn points the turn at the given player. Returns false if the player is
// not part of the session.
func (g *Game) SetTurn(userID string) bool {
	for i, pl := range g.Players {
		if pl.UserID == userID {
			g.CurrentIdx = i
			return true
		}
	}
	return false
}

// AdvanceTurn moves the turn pointer to the structurally next eligible player,
// wrapping around and skipping empty-handed or disconnected players. If no
// other player is eligible the pointer stays put.
func (g *Game) AdvanceTurn() *Player {
	n := len(g.Players)
	if n == 0 {
		return nil
	}
	for step := 1; step <= n; step++ {
		cand := g.Players[(g.CurrentIdx+step)%n]
		if cand.Alive && cand.Hand.Len() > 0 {
			g.SetTurn(cand.UserID)
			return cand
		}
	}
	return g.CurrentPlayer()
}

// NextAfter returns the id of the next eligible player after the given one in
// turn order. Returns the empty string when the player is unknown or nobody is
// eligible.
func (g *Game) NextAfter(userID string) string {
	start := -1
	for i, pl := range g.Players {
		if pl.UserID == userID {
			start = i
			break
		}
	}
	if start == -1 {
		return ""
	}
	n := len(g.Players)
	for step := 1; step <= n; step++ {
		cand := g.Players[(start+step)%n]
		if cand.Alive && cand.Hand.Len() > 0 {
			return cand.UserID
		}
	}
	return ""
}

// CountPlayersWithCards returns how many players still hold cards.
func (g *Game) CountPlayersWithCards() int {
	n := 0
	for _, pl := range g.Players {
		if pl.Hand.Len() > 0 {
			n++
		}
	}
	return n
}

// AliveCount returns the number of connected players. Vote resolution is
// measured against this count.
func (g *Game) AliveCount() int {
	n := 0
	for _, pl := range g.Players {
		if pl.Alive {
			n++
		}
	}
	return n
}

// AllReady reports whether every connected player has readied up.
func (g *Game) AllReady() bool {
	for _, pl := range g.Players {
		if pl.Alive && pl.Status != StatusReady {
			return false
		}
	}
	return true
}

// LabelPayload is the match label advertised for quick-match queries.
type LabelPayload struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// ComputeLabel derives the advertised label from session state.
func ComputeLabel(g *Game) LabelPayload {
	open := g.Phase == PhaseLobby && len(g.Players) < g.Settings.MaxPlayers
	return LabelPayload{Open: open, Game: "ratscrew", Phase: string(g.Phase)}
}
