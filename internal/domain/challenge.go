package domain

// FaceCardChallenge is the transient state opened when a face card is played:
// the responder gets a limited number of plays to produce another face card or
// the challenger takes the pile. A counter face card replaces the challenge
// wholesale; it never adds to the remaining count.
type FaceCardChallenge struct {
	ChallengerID string
	Total        int
	Remaining    int
	ResponderID  string
}

// NewFaceCardChallenge opens a challenge granting count plays to the
// responder. The allowance is never below one.
func NewFaceCardChallenge(challengerID string, count int, responderID string) *FaceCardChallenge {
	if count < 1 {
		count = 1
	}
	return &FaceCardChallenge{
		ChallengerID: challengerID,
		Total:        count,
		Remaining:    count,
		ResponderID:  responderID,
	}
}
