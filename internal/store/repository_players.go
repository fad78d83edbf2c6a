package store

import (
	"context"
	"database/sql"
	"errors"
)

const playerColumns = `id, session_id, user_id, name, is_ai, seat_no, role, is_alive,
elimination_type, revealed_role, created_at`

func (s *Store) CreatePlayer(ctx context.Context, p *Player) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO players
(id, session_id, user_id, name, is_ai, seat_no, role, is_alive, elimination_type, revealed_role)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.SessionID, p.UserID, p.Name, p.IsAI, p.SeatNo, p.Role, p.IsAlive,
		p.EliminationType, p.RevealedRole)
	return err
}

// ListPlayers returns the session's players in seat order.
func (s *Store) ListPlayers(ctx context.Context, sessionID string) ([]Player, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+playerColumns+`
FROM players WHERE session_id = $1 ORDER BY seat_no`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.SessionID, &p.UserID, &p.Name, &p.IsAI, &p.SeatNo,
			&p.Role, &p.IsAlive, &p.EliminationType, &p.RevealedRole, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPlayer(ctx context.Context, playerID string) (*Player, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, playerID)
	var p Player
	err := row.Scan(&p.ID, &p.SessionID, &p.UserID, &p.Name, &p.IsAI, &p.SeatNo,
		&p.Role, &p.IsAlive, &p.EliminationType, &p.RevealedRole, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdatePlayerRole(ctx context.Context, playerID, role string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE players SET role = $2 WHERE id = $1`, playerID, role)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// MarkPlayerDead records an elimination. revealedRole is empty for night
// fades, whose role only comes out at game end.
func (s *Store) MarkPlayerDead(ctx context.Context, playerID, eliminationType, revealedRole string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE players
SET is_alive = FALSE, elimination_type = $2, revealed_role = $3 WHERE id = $1`,
		playerID, eliminationType, revealedRole)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// RevealPlayerRole discloses a role publicly, at elimination or game end.
func (s *Store) RevealPlayerRole(ctx context.Context, playerID, role string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE players SET revealed_role = $2 WHERE id = $1`, playerID, role)
	if err != nil {
		return err
	}
	return requireRow(res)
}
