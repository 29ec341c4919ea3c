package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/cv-tailor/internal/types"
)

// DefaultRetention is how long a session is kept before the sweeper
// removes it.
const DefaultRetention = 24 * time.Hour

// Session holds the state of one tailoring conversation: the parsed
// profile and posting plus the latest tailored result.
type Session struct {
	ID        uuid.UUID               `json:"id"`
	Profile   *types.UserProfile      `json:"profile,omitempty"`
	Job       *types.JobDescription   `json:"job,omitempty"`
	Result    *types.TailoredCVResult `json:"result,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
	ExpiresAt time.Time               `json:"expires_at"`
}

// CreateSession stores a new session and returns its ID. A zero
// retention falls back to DefaultRetention.
func (db *DB) CreateSession(ctx context.Context, session *Session, retention time.Duration) (uuid.UUID, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}

	profileJSON, jobJSON, resultJSON, err := marshalSession(session)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO sessions (profile, job, result, expires_at)
		 VALUES ($1, $2, $3, NOW() + $4)
		 RETURNING id`,
		profileJSON, jobJSON, resultJSON, retention,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// GetSession retrieves a session by ID. Returns nil without error when
// the session does not exist or has already expired.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	var (
		session     Session
		profileJSON []byte
		jobJSON     []byte
		resultJSON  []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, profile, job, result, created_at, updated_at, expires_at
		 FROM sessions WHERE id = $1 AND expires_at > NOW()`,
		id,
	).Scan(&session.ID, &profileJSON, &jobJSON, &resultJSON,
		&session.CreatedAt, &session.UpdatedAt, &session.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := unmarshalSession(&session, profileJSON, jobJSON, resultJSON); err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateSession replaces the stored profile, job, and result for an
// existing session.
func (db *DB) UpdateSession(ctx context.Context, session *Session) error {
	profileJSON, jobJSON, resultJSON, err := marshalSession(session)
	if err != nil {
		return err
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE sessions SET profile = $1, job = $2, result = $3, updated_at = NOW()
		 WHERE id = $4 AND expires_at > NOW()`,
		profileJSON, jobJSON, resultJSON, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", session.ID)
	}
	return nil
}

// DeleteExpired removes all sessions past their expiry and returns the
// number of rows deleted. The server runs this on an hourly sweep.
func (db *DB) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected(), nil
}

func marshalSession(session *Session) (profile, job, result []byte, err error) {
	if session.Profile != nil {
		if profile, err = json.Marshal(session.Profile); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal profile: %w", err)
		}
	}
	if session.Job != nil {
		if job, err = json.Marshal(session.Job); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal job: %w", err)
		}
	}
	if session.Result != nil {
		if result, err = json.Marshal(session.Result); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal result: %w", err)
		}
	}
	return profile, job, result, nil
}

func unmarshalSession(session *Session, profileJSON, jobJSON, resultJSON []byte) error {
	if len(profileJSON) > 0 {
		session.Profile = &types.UserProfile{}
		if err := json.Unmarshal(profileJSON, session.Profile); err != nil {
			return fmt.Errorf("failed to unmarshal profile: %w", err)
		}
	}
	if len(jobJSON) > 0 {
		session.Job = &types.JobDescription{}
		if err := json.Unmarshal(jobJSON, session.Job); err != nil {
			return fmt.Errorf("failed to unmarshal job: %w", err)
		}
	}
	if len(resultJSON) > 0 {
		session.Result = &types.TailoredCVResult{}
		if err := json.Unmarshal(resultJSON, session.Result); err != nil {
			return fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}
	return nil
}
