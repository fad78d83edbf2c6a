package store

import "context"

// UpsertNightAction records one actor's night action for a round. A later
// submission overwrites the prior target while keeping the row's original
// submission position, so the night tie-break still honors the first signal.
func (s *Store) UpsertNightAction(ctx context.Context, a *NightAction) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO night_actions
(session_id, round_no, actor_player_id, action_type, target_player_id)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (session_id, round_no, actor_player_id, action_type)
DO UPDATE SET target_player_id = EXCLUDED.target_player_id`,
		a.SessionID, a.RoundNo, a.ActorPlayerID, a.ActionType, a.TargetPlayerID)
	return err
}

// ListNightActions returns a round's actions in submission order.
func (s *Store) ListNightActions(ctx context.Context, sessionID string, roundNo int) ([]NightAction, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, session_id, round_no, actor_player_id,
action_type, target_player_id, created_at
FROM night_actions WHERE session_id = $1 AND round_no = $2 ORDER BY id`, sessionID, roundNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []NightAction
	for rows.Next() {
		var a NightAction
		if err := rows.Scan(&a.ID, &a.SessionID, &a.RoundNo, &a.ActorPlayerID,
			&a.ActionType, &a.TargetPlayerID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpsertVote records one voter's exile vote for a round, last write wins.
func (s *Store) UpsertVote(ctx context.Context, v *Vote) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO votes
(session_id, round_no, voter_player_id, target_player_id)
VALUES ($1,$2,$3,$4)
ON CONFLICT (session_id, round_no, voter_player_id)
DO UPDATE SET target_player_id = EXCLUDED.target_player_id`,
		v.SessionID, v.RoundNo, v.VoterPlayerID, v.TargetPlayerID)
	return err
}

func (s *Store) ListVotes(ctx context.Context, sessionID string, roundNo int) ([]Vote, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, session_id, round_no, voter_player_id,
target_player_id, created_at
FROM votes WHERE session_id = $1 AND round_no = $2 ORDER BY id`, sessionID, roundNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Vote
	for rows.Next() {
		var v Vote
		if err := rows.Scan(&v.ID, &v.SessionID, &v.RoundNo, &v.VoterPlayerID,
			&v.TargetPlayerID, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
