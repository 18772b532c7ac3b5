package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrRecordExists = errors.New("record already exists")

// Record is the outcome of one finished game.
type Record struct {
	SessionID uuid.UUID `json:"session_id" db:"session_id"`
	Side      int       `json:"side" db:"side"`
	HoleCount int       `json:"hole_count" db:"hole_count"`
	Won       bool      `json:"won" db:"won"`
	Moves     int       `json:"moves" db:"moves"`
	StartedAt time.Time `json:"started_at" db:"started_at"`
	EndedAt   time.Time `json:"ended_at" db:"ended_at"`
}

func (r Record) Playtime() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

func (q Queries) CreateRecord(ctx context.Context, r Record) error {
	_, err := q.db.Exec(
		ctx,
		`INSERT INTO record (
			session_id, side, hole_count, won, moves, started_at, ended_at
		)
		VALUES (
			@session_id, @side, @hole_count, @won, @moves, @started_at, @ended_at
		);`,
		pgx.NamedArgs{
			"session_id": r.SessionID,
			"side":       r.Side,
			"hole_count": r.HoleCount,
			"won":        r.Won,
			"moves":      r.Moves,
			"started_at": r.StartedAt,
			"ended_at":   r.EndedAt,
		},
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", ErrRecordExists, r.SessionID)
	}
	return err
}

// Highscore is a won game ranked by playtime.
type Highscore struct {
	SessionID  uuid.UUID `json:"session_id" db:"session_id"`
	Side       int       `json:"side" db:"side"`
	HoleCount  int       `json:"hole_count" db:"hole_count"`
	Moves      int       `json:"moves" db:"moves"`
	EndedAt    time.Time `json:"ended_at" db:"ended_at"`
	PlaytimeMs float64   `json:"playtime_ms" db:"playtime_ms"`
}

type RecordFilter struct {
	Side      *int
	HoleCount *int
	Limit     int
}

const DefaultRecordLimit = 100

func (f RecordFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := []string{"won = true"}
	args := pgx.NamedArgs{}
	if f.Side != nil {
		clauses = append(clauses, "side = @side")
		args["side"] = *f.Side
	}
	if f.HoleCount != nil {
		clauses = append(clauses, "hole_count = @hole_count")
		args["hole_count"] = *f.HoleCount
	}
	limit := f.Limit
	if limit <= 0 || limit > DefaultRecordLimit {
		limit = DefaultRecordLimit
	}
	args["limit"] = limit
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetRecords(
	ctx context.Context, filter RecordFilter,
) ([]Highscore, error) {
	whereClause, args := filter.WhereClause()
	query := `
	SELECT
		session_id,
		side,
		hole_count,
		moves,
		ended_at,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM record
	WHERE ` + whereClause + `
	ORDER BY playtime_ms, ended_at
	LIMIT @limit;`

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
