package circle

import (
	"context"

	"circle-server/internal/game"
	"circle-server/internal/store"
)

// SyncAI fills in decisions for AI seats in the current phase. It is safe to
// call redundantly: seats that already acted this round are left alone, and
// the per-round upsert keys make a repeated write replace rather than
// duplicate.
func (s *Service) SyncAI(ctx context.Context, hostUserID, sessionID string) error {
	sess, err := s.hostSession(ctx, hostUserID, sessionID)
	if err != nil {
		return err
	}
	players, err := s.storage.ListPlayers(ctx, sessionID)
	if err != nil {
		return err
	}
	snapshot := roster(players)

	switch sess.Status {
	case string(game.PhaseNight):
		return s.syncAINight(ctx, sess, players, snapshot)
	case string(game.PhaseVoting):
		return s.syncAIVotes(ctx, sess, players, snapshot)
	case string(game.PhaseDay):
		return s.syncAIDay(ctx, sess, players, snapshot)
	default:
		return ErrWrongPhase
	}
}

func (s *Service) syncAINight(ctx context.Context, sess *store.Session, players []store.Player, snapshot *game.Roster) error {
	actions, err := s.storage.ListNightActions(ctx, sess.ID, sess.RoundNo)
	if err != nil {
		return err
	}
	acted := make(map[string]bool, len(actions))
	for _, a := range actions {
		acted[a.ActorPlayerID] = true
	}
	for _, p := range players {
		if !p.IsAI || !p.IsAlive || acted[p.ID] {
			continue
		}
		seat, ok := snapshot.Get(p.ID)
		if !ok {
			continue
		}
		s.rndMu.Lock()
		actionType, target, ok := s.ai.NightAction(snapshot, seat)
		s.rndMu.Unlock()
		if !ok {
			continue
		}
		if err := s.storage.UpsertNightAction(ctx, &store.NightAction{
			SessionID:      sess.ID,
			RoundNo:        sess.RoundNo,
			ActorPlayerID:  p.ID,
			ActionType:     string(actionType),
			TargetPlayerID: target,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) syncAIVotes(ctx context.Context, sess *store.Session, players []store.Player, snapshot *game.Roster) error {
	votes, err := s.storage.ListVotes(ctx, sess.ID, sess.RoundNo)
	if err != nil {
		return err
	}
	voted := make(map[string]bool, len(votes))
	for _, v := range votes {
		voted[v.VoterPlayerID] = true
	}
	for _, p := range players {
		if !p.IsAI || !p.IsAlive || voted[p.ID] {
			continue
		}
		seat, ok := snapshot.Get(p.ID)
		if !ok {
			continue
		}
		s.rndMu.Lock()
		target, ok := s.ai.VoteTarget(snapshot, seat)
		s.rndMu.Unlock()
		if !ok {
			continue
		}
		if err := s.storage.UpsertVote(ctx, &store.Vote{
			SessionID:      sess.ID,
			RoundNo:        sess.RoundNo,
			VoterPlayerID:  p.ID,
			TargetPlayerID: target,
		}); err != nil {
			return err
		}
	}
	return nil
}

// syncAIDay lets AI seats speak their canned line: only the current speaker
// in presence mode, every quiet AI seat otherwise. One line per seat per day.
func (s *Service) syncAIDay(ctx context.Context, sess *store.Session, players []store.Player, snapshot *game.Roster) error {
	messages, err := s.storage.ListDayMessages(ctx, sess.ID, sess.RoundNo)
	if err != nil {
		return err
	}
	spoke := make(map[string]bool, len(messages))
	for _, m := range messages {
		spoke[m.SenderPlayerID] = true
	}
	for _, p := range players {
		if !p.IsAI || !p.IsAlive || spoke[p.ID] {
			continue
		}
		if sess.PresenceMode && sess.CurrentSpeakerID != p.ID {
			continue
		}
		s.rndMu.Lock()
		line := s.ai.DayLine(game.Role(p.Role))
		s.rndMu.Unlock()
		if err := s.storage.AppendDayMessage(ctx, &store.DayMessage{
			SessionID:      sess.ID,
			RoundNo:        sess.RoundNo,
			SenderPlayerID: p.ID,
			Content:        line,
		}); err != nil {
			return err
		}
	}
	return nil
}
