package repository

import (
	"fmt"

	"github.com/google/uuid"

	"vocabdrill/internal/database"
	"vocabdrill/internal/models"
)

// ResultsRepository stores finished session summaries
type ResultsRepository struct {
	db *database.DB
}

// NewResultsRepository creates a new results repository
func NewResultsRepository(db *database.DB) *ResultsRepository {
	return &ResultsRepository{db: db}
}

// Insert records a finished session
func (r *ResultsRepository) Insert(result models.SessionResult) error {
	query := `
		INSERT INTO session_results (id, started_at, completed_at, deck_size, total_asked, score, missed_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		result.ID.String(),
		result.StartedAt,
		result.CompletedAt,
		result.DeckSize,
		result.TotalAsked,
		result.Score,
		result.MissedCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session result: %w", err)
	}
	return nil
}

// Recent returns the most recently completed sessions, newest first
func (r *ResultsRepository) Recent(limit int) ([]models.SessionResult, error) {
	query := `
		SELECT id, started_at, completed_at, deck_size, total_asked, score, missed_count
		FROM session_results
		ORDER BY completed_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query session results: %w", err)
	}
	defer rows.Close()

	var results []models.SessionResult
	for rows.Next() {
		var result models.SessionResult
		var id string
		err := rows.Scan(
			&id,
			&result.StartedAt,
			&result.CompletedAt,
			&result.DeckSize,
			&result.TotalAsked,
			&result.Score,
			&result.MissedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session result: %w", err)
		}
		result.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse session result ID: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
