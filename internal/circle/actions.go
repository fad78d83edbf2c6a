package circle

import (
	"context"
	"strings"

	"circle-server/internal/game"
	"circle-server/internal/store"
)

const (
	dayMessageMaxLen    = 500
	votingMessageMaxLen = 120
)

// SubmitNightAction records the caller's night action for the current round.
// Resubmitting replaces the earlier target.
func (s *Service) SubmitNightAction(ctx context.Context, userID, sessionID, targetPlayerID string) error {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != string(game.PhaseNight) {
		return ErrWrongPhase
	}
	players, err := s.storage.ListPlayers(ctx, sessionID)
	if err != nil {
		return err
	}
	actor, err := seatedPlayer(players, userID)
	if err != nil {
		return err
	}
	if !actor.IsAlive {
		return ErrNotAlive
	}
	actionType, ok := game.ActionTypeForRole(game.Role(actor.Role))
	if !ok {
		return ErrNoNightRole
	}
	target := findPlayer(players, targetPlayerID)
	if target == nil {
		return ErrInvalidTarget
	}
	if !target.IsAlive {
		return ErrTargetNotAlive
	}
	// guardians may shield themselves; shadows and oracles must look outward
	if target.ID == actor.ID && actionType != game.ActionGuardianProtect {
		return ErrSelfTarget
	}

	return s.storage.UpsertNightAction(ctx, &store.NightAction{
		SessionID:      sessionID,
		RoundNo:        sess.RoundNo,
		ActorPlayerID:  actor.ID,
		ActionType:     string(actionType),
		TargetPlayerID: target.ID,
	})
}

// SubmitVote records the caller's exile vote for the current round.
func (s *Service) SubmitVote(ctx context.Context, userID, sessionID, targetPlayerID string) error {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != string(game.PhaseVoting) {
		return ErrWrongPhase
	}
	players, err := s.storage.ListPlayers(ctx, sessionID)
	if err != nil {
		return err
	}
	voter, err := seatedPlayer(players, userID)
	if err != nil {
		return err
	}
	if !voter.IsAlive {
		return ErrNotAlive
	}
	target := findPlayer(players, targetPlayerID)
	if target == nil {
		return ErrInvalidTarget
	}
	if !target.IsAlive {
		return ErrTargetNotAlive
	}
	if target.ID == voter.ID {
		return ErrSelfTarget
	}

	return s.storage.UpsertVote(ctx, &store.Vote{
		SessionID:      sessionID,
		RoundNo:        sess.RoundNo,
		VoterPlayerID:  voter.ID,
		TargetPlayerID: target.ID,
	})
}

// SendDayMessage posts to the circle chat. During the day, presence mode
// gates it to the current speaker; during voting it needs open_short mode and
// a tighter length cap.
func (s *Service) SendDayMessage(ctx context.Context, userID, sessionID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyMessage
	}
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	players, err := s.storage.ListPlayers(ctx, sessionID)
	if err != nil {
		return err
	}
	sender, err := seatedPlayer(players, userID)
	if err != nil {
		return err
	}
	if !sender.IsAlive {
		return ErrNotAlive
	}

	switch sess.Status {
	case string(game.PhaseDay):
		if len(content) > dayMessageMaxLen {
			return ErrMessageTooLong
		}
		if sess.PresenceMode && sess.CurrentSpeakerID != sender.ID {
			return ErrNotYourTurn
		}
	case string(game.PhaseVoting):
		if sess.VotingChatMode != VotingChatOpenShort {
			return ErrVotingChatClosed
		}
		if len(content) > votingMessageMaxLen {
			return ErrMessageTooLong
		}
	default:
		return ErrWrongPhase
	}

	return s.storage.AppendDayMessage(ctx, &store.DayMessage{
		SessionID:      sessionID,
		RoundNo:        sess.RoundNo,
		SenderPlayerID: sender.ID,
		Content:        content,
	})
}

func findPlayer(players []store.Player, id string) *store.Player {
	for i := range players {
		if players[i].ID == id {
			return &players[i]
		}
	}
	return nil
}
