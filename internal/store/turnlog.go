package store

import (
	"fmt"
	"time"

	"mamafit-chatbot/internal/db"
	"mamafit-chatbot/internal/dialog"
)

// TurnLog persists processed turns to postgres for later review by the
// shop admin. It is optional: the bot runs without it when no database
// is configured.
type TurnLog struct {
	db *db.DB
}

func NewTurnLog(database *db.DB) *TurnLog {
	return &TurnLog{db: database}
}

// LoggedTurn is one recorded exchange.
type LoggedTurn struct {
	UserID         string
	Message        string
	DetectedIntent string
	UsedIntent     string
	Confidence     float64
	Reply          string
	CreatedAt      time.Time
}

// SaveTurn records the outcome of one processed message.
func (t *TurnLog) SaveTurn(userID string, res dialog.TurnResult) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}
	query := `
		INSERT INTO turn_log (user_id, message, detected_intent, used_intent, confidence, reply, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := t.db.Exec(query, userID, res.OriginalMessage, res.DetectedIntent, string(res.UsedIntent), res.Confidence, res.Reply)
	if err != nil {
		return fmt.Errorf("failed to save turn: %w", err)
	}
	return nil
}

// RecentTurns returns the latest turns for a user, newest first.
func (t *TurnLog) RecentTurns(userID string, limit int) ([]LoggedTurn, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT user_id, message, detected_intent, used_intent, confidence, reply, created_at
		FROM turn_log
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := t.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var out []LoggedTurn
	for rows.Next() {
		var lt LoggedTurn
		if err := rows.Scan(&lt.UserID, &lt.Message, &lt.DetectedIntent, &lt.UsedIntent, &lt.Confidence, &lt.Reply, &lt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		out = append(out, lt)
	}
	return out, rows.Err()
}
