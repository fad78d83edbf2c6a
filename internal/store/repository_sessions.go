package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

const sessionColumns = `id, code, host_user_id, status, round_no, min_players, max_players,
presence_mode, axy_chat_bridge, voting_chat_mode, current_speaker_id, speaker_order,
speaker_idx, phase_deadline, winner, created_at`

func (s *Store) CreateSession(ctx context.Context, sess *Session) error {
	order, err := json.Marshal(sess.SpeakerOrder)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `INSERT INTO sessions
(id, code, host_user_id, status, round_no, min_players, max_players, presence_mode,
 axy_chat_bridge, voting_chat_mode, current_speaker_id, speaker_order, speaker_idx,
 phase_deadline, winner)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		sess.ID, sess.Code, sess.HostUserID, sess.Status, sess.RoundNo, sess.MinPlayers,
		sess.MaxPlayers, sess.PresenceMode, sess.AxyChatBridge, sess.VotingChatMode,
		sess.CurrentSpeakerID, order, sess.SpeakerIdx, sess.PhaseDeadline, sess.Winner)
	return err
}

func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	return scanSession(row)
}

func (s *Store) GetSessionByCode(ctx context.Context, code string) (*Session, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE code = $1`, code)
	return scanSession(row)
}

// UpdateSessionSettings rewrites the lobby-tunable fields.
func (s *Store) UpdateSessionSettings(ctx context.Context, sess *Session) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE sessions
SET max_players = $2, presence_mode = $3, axy_chat_bridge = $4, voting_chat_mode = $5
WHERE id = $1`,
		sess.ID, sess.MaxPlayers, sess.PresenceMode, sess.AxyChatBridge, sess.VotingChatMode)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateSessionPhaseCAS writes the phase fields of sess guarded by a
// compare-and-swap on status. It reports false when another writer won the
// transition first, in which case nothing was written.
func (s *Store) UpdateSessionPhaseCAS(ctx context.Context, sess *Session, fromStatus string) (bool, error) {
	order, err := json.Marshal(sess.SpeakerOrder)
	if err != nil {
		return false, err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE sessions
SET status = $2, round_no = $3, current_speaker_id = $4, speaker_order = $5,
    speaker_idx = $6, phase_deadline = $7, winner = $8
WHERE id = $1 AND status = $9`,
		sess.ID, sess.Status, sess.RoundNo, sess.CurrentSpeakerID, order,
		sess.SpeakerIdx, sess.PhaseDeadline, sess.Winner, fromStatus)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var sess Session
	var order []byte
	var deadline sql.NullTime
	err := row.Scan(&sess.ID, &sess.Code, &sess.HostUserID, &sess.Status, &sess.RoundNo,
		&sess.MinPlayers, &sess.MaxPlayers, &sess.PresenceMode, &sess.AxyChatBridge,
		&sess.VotingChatMode, &sess.CurrentSpeakerID, &order, &sess.SpeakerIdx,
		&deadline, &sess.Winner, &sess.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(order) > 0 {
		if err := json.Unmarshal(order, &sess.SpeakerOrder); err != nil {
			return nil, err
		}
	}
	if deadline.Valid {
		t := deadline.Time
		sess.PhaseDeadline = &t
	}
	return &sess, nil
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
