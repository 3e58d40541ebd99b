package app

import "ratscrew/internal/domain"

// StartVote opens a vote on a topic. At most one vote may be open per session.
func (s *Service) StartVote(g *domain.Game, userID, topic string) ([]Event, error) {
	if g.PlayerByID(userID) == nil {
		return nil, ErrUnknownPlayer
	}
	if g.Vote != nil {
		return nil, ErrVoteActive
	}

	g.Vote = domain.NewVote(topic)
	g.Log.Append(userID, domain.EventTypeStartVote, map[string]any{"topic": topic})
	return []Event{{
		Kind:    EventVoteStarted,
		Payload: VoteStartedPayload{Topic: topic, StartedBy: userID},
	}}, nil
}

// SubmitVote appends a ballot. Submissions are append-only and are not
// deduplicated per player; resolution triggers as soon as the raw ballot count
// reaches the connected player count.
func (s *Service) SubmitVote(g *domain.Game, userID string, approve bool) ([]Event, error) {
	if g.PlayerByID(userID) == nil {
		return nil, ErrUnknownPlayer
	}
	if g.Vote == nil {
		return nil, ErrNoVoteActive
	}

	g.Vote.Ballots = append(g.Vote.Ballots, domain.Ballot{PlayerID: userID, Approve: approve})
	g.Log.Append(userID, domain.EventTypeSubmitVote, map[string]any{"approve": approve})

	events := []Event{{
		Kind: EventVoteSubmitted,
		Payload: VoteSubmittedPayload{
			UserID:  userID,
			Ballots: len(g.Vote.Ballots),
			Needed:  g.AliveCount(),
		},
	}}
	events = append(events, s.resolveVoteIfComplete(g)...)
	return events, nil
}

// resolveVoteIfComplete resolves the open vote once the ballot count covers
// the connected player count. Also consulted when a player leaves, so a
// mid-vote disconnect lowers the bar instead of wedging the vote.
func (s *Service) resolveVoteIfComplete(g *domain.Game) []Event {
	v := g.Vote
	if v == nil || len(v.Ballots) < g.AliveCount() {
		return nil
	}

	yes, no := v.Tally()
	passed := v.Passed()
	g.Vote = nil
	g.Log.Append("", domain.EventTypeResolveVote, map[string]any{
		"topic":  v.Topic,
		"yes":    yes,
		"no":     no,
		"passed": passed,
	})
	return []Event{{
		Kind:    EventVoteResolved,
		Payload: VoteResolvedPayload{Topic: v.Topic, Yes: yes, No: no, Passed: passed},
	}}
}
