package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/caupolican/auge/internal/models"
)

// InsertFeedback stores a post-session per-muscle questionnaire.
func (db *DB) InsertFeedback(ctx context.Context, fb models.PostSessionFeedback) error {
	muscles, err := json.Marshal(fb.Muscles)
	if err != nil {
		return fmt.Errorf("encoding feedback muscles: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO post_session_feedback (log_id, date, muscles)
		 VALUES ($1,$2,$3)`,
		fb.LogID, fb.Date, muscles)
	if err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	return nil
}

// QueryFeedback retrieves questionnaires dated in [start, end), newest first.
func (db *DB) QueryFeedback(ctx context.Context, start, end time.Time) ([]models.PostSessionFeedback, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT log_id, date, muscles
		 FROM post_session_feedback
		 WHERE date >= $1 AND date < $2
		 ORDER BY date DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	var result []models.PostSessionFeedback
	for rows.Next() {
		var (
			fb      models.PostSessionFeedback
			muscles []byte
		)
		if err := rows.Scan(&fb.LogID, &fb.Date, &muscles); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		if err := json.Unmarshal(muscles, &fb.Muscles); err != nil {
			return nil, fmt.Errorf("decoding feedback muscles: %w", err)
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}
