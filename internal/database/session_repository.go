package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/example/kanjideck/pkg/models"
)

// SessionRepository handles database operations for study sessions. The
// session log is append-only: rows are created once and never updated.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new repository instance
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// sessionRow is the scan target; per-card results travel as a JSON column
type sessionRow struct {
	ID              string         `db:"id"`
	UserID          string         `db:"user_id"`
	TopicID         string         `db:"topic_id"`
	Mode            string         `db:"mode"`
	Date            time.Time      `db:"date"`
	TotalCards      int            `db:"total_cards"`
	CorrectCount    int            `db:"correct_count"`
	DurationSeconds float64        `db:"duration_seconds"`
	Results         sql.NullString `db:"results"`
}

// Create appends a session record. The id and date are assigned here: the
// store owns the timestamp, not the caller.
func (r *SessionRepository) Create(ctx context.Context, session *models.StudySession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	session.Date = time.Now().UTC()

	var results sql.NullString
	if len(session.Results) > 0 {
		data, err := json.Marshal(session.Results)
		if err != nil {
			return fmt.Errorf("failed to encode session results: %w", err)
		}
		results = sql.NullString{String: string(data), Valid: true}
	}

	query := r.db.Rebind(`
		INSERT INTO study_sessions (
			id, user_id, topic_id, mode, date,
			total_cards, correct_count, duration_seconds, results
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.TopicID,
		session.Mode,
		session.Date,
		session.TotalCards,
		session.CorrectCount,
		session.DurationSeconds,
		results,
	)
	if err != nil {
		return fmt.Errorf("failed to create study session: %w", err)
	}
	return nil
}

// Recent returns the user's most recent sessions, newest first, bounded to
// limit. This is the only query shape the history view needs.
func (r *SessionRepository) Recent(ctx context.Context, userID string, limit int) ([]models.StudySession, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []sessionRow
	query := r.db.Rebind(`
		SELECT id, user_id, topic_id, mode, date,
		       total_cards, correct_count, duration_seconds, results
		FROM study_sessions
		WHERE user_id = ?
		ORDER BY date DESC
		LIMIT ?
	`)
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent sessions: %w", err)
	}

	sessions := make([]models.StudySession, 0, len(rows))
	for _, row := range rows {
		session := models.StudySession{
			ID:              row.ID,
			UserID:          row.UserID,
			TopicID:         row.TopicID,
			Mode:            row.Mode,
			Date:            row.Date,
			TotalCards:      row.TotalCards,
			CorrectCount:    row.CorrectCount,
			DurationSeconds: row.DurationSeconds,
		}
		if row.Results.Valid {
			if err := json.Unmarshal([]byte(row.Results.String), &session.Results); err != nil {
				return nil, fmt.Errorf("failed to decode session results: %w", err)
			}
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// PruneOlderThan deletes sessions older than the retention window and
// returns the number of rows removed
func (r *SessionRepository) PruneOlderThan(ctx context.Context, window time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-window)

	query := r.db.Rebind(`DELETE FROM study_sessions WHERE date < ?`)
	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
