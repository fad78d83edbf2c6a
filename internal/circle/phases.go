package circle

import (
	"context"
	"encoding/json"

	"circle-server/internal/game"
	"circle-server/internal/store"

	"github.com/rs/zerolog/log"
)

// StartSession locks the lobby, assigns roles, and opens the first night.
func (s *Service) StartSession(ctx context.Context, hostUserID, sessionID string) (*store.Session, error) {
	sess, err := s.hostSession(ctx, hostUserID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != string(game.PhaseLobby) {
		return nil, ErrWrongPhase
	}
	players, err := s.storage.ListPlayers(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if len(players) < sess.MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	s.rndMu.Lock()
	roles := game.AssignRoles(s.rnd, len(players))
	s.rndMu.Unlock()
	// players arrive in seat order; the deck is assigned positionally.
	// Roles land while the session is still in the lobby: a write failure
	// here leaves a restartable lobby, never a half-assigned night, and a
	// retried start simply reassigns.
	for i, p := range players {
		if err := s.storage.UpdatePlayerRole(ctx, p.ID, string(roles[i])); err != nil {
			return nil, err
		}
	}

	sess.Status = string(game.PhaseNight)
	sess.RoundNo = 1
	sess.PhaseDeadline = s.deadline(s.cfg.NightDuration)
	ok, err := s.storage.UpdateSessionPhaseCAS(ctx, sess, string(game.PhaseLobby))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPhaseConflict
	}

	s.appendEvent(ctx, sess, string(game.PhaseNight), "public", "", "game_started", jsonContent(map[string]any{
		"players": len(players),
	}))
	log.Info().Str("session_id", sess.ID).Int("players", len(players)).Msg("game started")
	return sess, nil
}

// ResolveNight closes the night: applies the shadow kill unless protected,
// delivers oracle reveals privately, and moves to day or ends the game.
func (s *Service) ResolveNight(ctx context.Context, hostUserID, sessionID string) (*NightOutcome, error) {
	sess, err := s.hostSession(ctx, hostUserID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != string(game.PhaseNight) {
		return nil, ErrWrongPhase
	}
	players, err := s.storage.ListPlayers(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	actions, err := s.storage.ListNightActions(ctx, sess.ID, sess.RoundNo)
	if err != nil {
		return nil, err
	}

	snapshot := roster(players)
	result := game.ResolveNight(snapshot, toGameActions(actions))

	after := roster(players)
	if result.VictimID != "" {
		if seat, ok := after.Get(result.VictimID); ok {
			seat.Alive = false
		}
	}
	winner := game.ComputeWinner(after)

	if winner != game.WinnerNone {
		sess.Status = string(game.PhaseEnded)
		sess.Winner = string(winner)
		sess.PhaseDeadline = nil
	} else {
		s.enterDay(sess, after)
	}
	ok, err := s.storage.UpdateSessionPhaseCAS(ctx, sess, string(game.PhaseNight))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPhaseConflict
	}

	// side effects only after winning the transition
	if result.VictimID != "" {
		if err := s.storage.MarkPlayerDead(ctx, result.VictimID, string(game.EliminationNightFade), ""); err != nil {
			return nil, err
		}
	}
	for _, or := range result.OracleResults {
		s.appendEvent(ctx, sess, string(game.PhaseNight), "private", or.OracleID, "oracle_reveal", jsonContent(map[string]any{
			"target_player_id": or.TargetID,
			"role":             string(or.TargetRole),
		}))
	}
	s.appendEvent(ctx, sess, string(game.PhaseNight), "public", "", "night_resolved", jsonContent(map[string]any{
		"victim_id": result.VictimID,
	}))
	if winner != game.WinnerNone {
		s.endGame(ctx, sess, players, winner)
	} else {
		s.appendEvent(ctx, sess, string(game.PhaseDay), "public", "", "day_began", jsonContent(map[string]any{
			"current_speaker_id": sess.CurrentSpeakerID,
		}))
	}

	return &NightOutcome{
		VictimID:       result.VictimID,
		ProtectedID:    result.ProtectedID,
		ShadowTargetID: result.ShadowTargetID,
		Winner:         winner,
		Status:         game.Phase(sess.Status),
	}, nil
}

// AdvanceDayTurn moves the presence-mode rotation to the next living speaker,
// or into voting when the order is exhausted.
func (s *Service) AdvanceDayTurn(ctx context.Context, hostUserID, sessionID string) (*TurnOutcome, error) {
	sess, err := s.hostSession(ctx, hostUserID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != string(game.PhaseDay) {
		return nil, ErrWrongPhase
	}
	if !sess.PresenceMode {
		return nil, ErrPresenceModeOff
	}
	players, err := s.storage.ListPlayers(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	id, idx, exhausted := game.NextSpeaker(sess.SpeakerOrder, sess.SpeakerIdx, roster(players))
	if exhausted {
		return s.moveToVoting(ctx, sess)
	}

	sess.CurrentSpeakerID = id
	sess.SpeakerIdx = idx
	sess.PhaseDeadline = s.deadline(s.cfg.DayTurn)
	ok, err := s.storage.UpdateSessionPhaseCAS(ctx, sess, string(game.PhaseDay))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPhaseConflict
	}
	s.appendEvent(ctx, sess, string(game.PhaseDay), "public", "", "speaker_turn", jsonContent(map[string]any{
		"speaker_player_id": id,
	}))
	return &TurnOutcome{CurrentSpeakerID: id, Status: game.PhaseDay}, nil
}

// BeginVoting ends the day discussion manually.
func (s *Service) BeginVoting(ctx context.Context, hostUserID, sessionID string) (*TurnOutcome, error) {
	sess, err := s.hostSession(ctx, hostUserID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != string(game.PhaseDay) {
		return nil, ErrWrongPhase
	}
	return s.moveToVoting(ctx, sess)
}

// ResolveVote closes the vote: a unique top count exiles that player with
// their role revealed on the spot; any tie spares everyone. The session then
// re-enters night with the round advanced, or ends on a win.
func (s *Service) ResolveVote(ctx context.Context, hostUserID, sessionID string) (*VoteOutcome, error) {
	sess, err := s.hostSession(ctx, hostUserID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != string(game.PhaseVoting) {
		return nil, ErrWrongPhase
	}
	players, err := s.storage.ListPlayers(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	votes, err := s.storage.ListVotes(ctx, sess.ID, sess.RoundNo)
	if err != nil {
		return nil, err
	}

	snapshot := roster(players)
	result := game.ResolveVotes(snapshot, toGameVotes(votes))

	after := roster(players)
	var exiledRole game.Role
	if result.ExiledID != "" {
		if seat, ok := after.Get(result.ExiledID); ok {
			seat.Alive = false
			exiledRole = seat.Role
		}
	}
	winner := game.ComputeWinner(after)

	if winner != game.WinnerNone {
		sess.Status = string(game.PhaseEnded)
		sess.Winner = string(winner)
		sess.PhaseDeadline = nil
	} else {
		sess.Status = string(game.PhaseNight)
		sess.RoundNo++
		sess.CurrentSpeakerID = ""
		sess.SpeakerOrder = nil
		sess.SpeakerIdx = 0
		sess.PhaseDeadline = s.deadline(s.cfg.NightDuration)
	}
	ok, err := s.storage.UpdateSessionPhaseCAS(ctx, sess, string(game.PhaseVoting))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPhaseConflict
	}

	if result.ExiledID != "" {
		if err := s.storage.MarkPlayerDead(ctx, result.ExiledID, string(game.EliminationExile), string(exiledRole)); err != nil {
			return nil, err
		}
	}
	s.appendEvent(ctx, sess, string(game.PhaseVoting), "public", "", "vote_resolved", jsonContent(map[string]any{
		"exiled_id":   result.ExiledID,
		"exiled_role": string(exiledRole),
		"tie":         result.Tie,
		"tally":       result.Tally,
	}))
	if winner != game.WinnerNone {
		s.endGame(ctx, sess, players, winner)
	}

	return &VoteOutcome{
		ExiledID:   result.ExiledID,
		ExiledRole: exiledRole,
		Tie:        result.Tie,
		Tally:      result.Tally,
		Winner:     winner,
		Status:     game.Phase(sess.Status),
		RoundNo:    sess.RoundNo,
	}, nil
}

// enterDay fills sess with day-phase fields against the post-night roster.
func (s *Service) enterDay(sess *store.Session, after *game.Roster) {
	sess.Status = string(game.PhaseDay)
	if sess.PresenceMode {
		order := game.SpeakerOrder(after)
		sess.SpeakerOrder = order
		sess.SpeakerIdx = 0
		if len(order) > 0 {
			sess.CurrentSpeakerID = order[0]
		}
		sess.PhaseDeadline = s.deadline(s.cfg.DayTurn)
	} else {
		sess.CurrentSpeakerID = ""
		sess.SpeakerOrder = nil
		sess.SpeakerIdx = 0
		sess.PhaseDeadline = s.deadline(s.cfg.DayDuration)
	}
}

func (s *Service) moveToVoting(ctx context.Context, sess *store.Session) (*TurnOutcome, error) {
	sess.Status = string(game.PhaseVoting)
	sess.CurrentSpeakerID = ""
	sess.PhaseDeadline = s.deadline(s.cfg.VotingDuration)
	ok, err := s.storage.UpdateSessionPhaseCAS(ctx, sess, string(game.PhaseDay))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPhaseConflict
	}
	s.appendEvent(ctx, sess, string(game.PhaseVoting), "public", "", "voting_began", "")
	return &TurnOutcome{Status: game.PhaseVoting}, nil
}

func (s *Service) endGame(ctx context.Context, sess *store.Session, players []store.Player, winner game.Winner) {
	s.revealAllRoles(ctx, players)
	s.appendEvent(ctx, sess, string(game.PhaseEnded), "public", "", "game_ended", jsonContent(map[string]any{
		"winner": string(winner),
	}))
	log.Info().Str("session_id", sess.ID).Str("winner", string(winner)).Msg("game ended")
}

func toGameActions(actions []store.NightAction) []game.NightAction {
	out := make([]game.NightAction, 0, len(actions))
	for _, a := range actions {
		out = append(out, game.NightAction{
			Actor:  a.ActorPlayerID,
			Type:   game.ActionType(a.ActionType),
			Target: a.TargetPlayerID,
		})
	}
	return out
}

func toGameVotes(votes []store.Vote) []game.Vote {
	out := make([]game.Vote, 0, len(votes))
	for _, v := range votes {
		out = append(out, game.Vote{Voter: v.VoterPlayerID, Target: v.TargetPlayerID})
	}
	return out
}

func jsonContent(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
