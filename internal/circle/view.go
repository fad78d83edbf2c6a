package circle

import (
	"context"
)

// ViewFor serializes a session for one seated viewer. Own role is always
// visible; other roles only once publicly revealed; private events only when
// addressed to the viewer.
func (s *Service) ViewFor(ctx context.Context, userID, sessionID string) (*View, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	players, err := s.storage.ListPlayers(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	viewer, err := seatedPlayer(players, userID)
	if err != nil {
		return nil, err
	}
	events, err := s.storage.ListEvents(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	messages, err := s.storage.ListDayMessages(ctx, sessionID, sess.RoundNo)
	if err != nil {
		return nil, err
	}

	view := &View{
		Session: SessionView{
			ID:               sess.ID,
			Code:             sess.Code,
			Status:           sess.Status,
			RoundNo:          sess.RoundNo,
			MinPlayers:       sess.MinPlayers,
			MaxPlayers:       sess.MaxPlayers,
			PresenceMode:     sess.PresenceMode,
			AxyChatBridge:    sess.AxyChatBridge,
			VotingChatMode:   sess.VotingChatMode,
			CurrentSpeakerID: sess.CurrentSpeakerID,
			PhaseDeadline:    sess.PhaseDeadline,
			Winner:           sess.Winner,
		},
	}

	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
		if !p.IsAI && p.UserID == sess.HostUserID {
			view.Session.HostPlayerID = p.ID
		}
		pv := PlayerView{
			ID:              p.ID,
			Name:            p.Name,
			IsAI:            p.IsAI,
			SeatNo:          p.SeatNo,
			IsAlive:         p.IsAlive,
			EliminationType: p.EliminationType,
		}
		switch {
		case p.ID == viewer.ID:
			pv.Role = p.Role
		case p.RevealedRole != "":
			pv.Role = p.RevealedRole
		}
		view.Players = append(view.Players, pv)
		if p.ID == viewer.ID {
			view.You = pv
		}
	}

	for _, e := range events {
		if e.Scope == "private" && e.TargetPlayerID != viewer.ID {
			continue
		}
		view.Events = append(view.Events, EventView{
			RoundNo:   e.RoundNo,
			Phase:     e.Phase,
			Scope:     e.Scope,
			EventType: e.EventType,
			Content:   e.Content,
			CreatedAt: e.CreatedAt,
		})
	}

	for _, m := range messages {
		view.Messages = append(view.Messages, MessageView{
			SenderPlayerID: m.SenderPlayerID,
			SenderName:     names[m.SenderPlayerID],
			RoundNo:        m.RoundNo,
			Content:        m.Content,
			CreatedAt:      m.CreatedAt,
		})
	}
	return view, nil
}
