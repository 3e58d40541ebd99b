package domain

import "time"

// Ballot is one submitted vote. Ballots are append-only; submissions are not
// deduplicated per player.
type Ballot struct {
	PlayerID string
	Approve  bool
}

// VoteState is the transient aggregate for the single vote a session may have
// open at a time.
type VoteState struct {
	Topic     string
	Ballots   []Ballot
	StartedAt time.Time
}

// NewVote opens a vote on the given topic.
func NewVote(topic string) *VoteState {
	return &VoteState{Topic: topic, StartedAt: time.Now().UTC()}
}

// HasVoted reports whether the player already has a ballot recorded.
func (v *VoteState) HasVoted(playerID string) bool {
	for _, b := range v.Ballots {
		if b.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Tally counts approvals and rejections.
func (v *VoteState) Tally() (yes, no int) {
	for _, b := range v.Ballots {
		if b.Approve {
			yes++
		} else {
			no++
		}
	}
	return yes, no
}

// Passed reports whether the vote carries: strictly more approvals than
// rejections. Ties fail.
func (v *VoteState) Passed() bool {
	yes, no := v.Tally()
	return yes > no
}
