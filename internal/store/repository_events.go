package store

import "context"

// AppendEvent inserts into the append-only event log. Events are never
// updated or deleted.
func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO events
(session_id, round_no, phase, scope, target_player_id, event_type, content)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.SessionID, e.RoundNo, e.Phase, e.Scope, e.TargetPlayerID, e.EventType, e.Content)
	return err
}

func (s *Store) ListEvents(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, session_id, round_no, phase, scope,
target_player_id, event_type, content, created_at
FROM events WHERE session_id = $1 ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.SessionID, &e.RoundNo, &e.Phase, &e.Scope,
			&e.TargetPlayerID, &e.EventType, &e.Content, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) AppendDayMessage(ctx context.Context, m *DayMessage) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO day_messages
(session_id, round_no, sender_player_id, content)
VALUES ($1,$2,$3,$4)`,
		m.SessionID, m.RoundNo, m.SenderPlayerID, m.Content)
	return err
}

// ListDayMessages returns a round's chat in send order.
func (s *Store) ListDayMessages(ctx context.Context, sessionID string, roundNo int) ([]DayMessage, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, session_id, round_no, sender_player_id,
content, created_at
FROM day_messages WHERE session_id = $1 AND round_no = $2 ORDER BY id`, sessionID, roundNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DayMessage
	for rows.Next() {
		var m DayMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.RoundNo, &m.SenderPlayerID,
			&m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
