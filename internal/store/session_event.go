package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with the ent SQL builder.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSessionEvents).
		Columns(
			"sequence", "timestamp", "session_id", "action", "item_count", "origin",
			"answered", "correct_answers", "skipped", "best_streak", "duration_secs",
		).
		Values(
			seqNum, time.Now().UTC(), data.SessionID, data.Action, data.ItemCount, data.Origin,
			data.Answered, data.CorrectAnswers, data.Skipped, data.BestStreak, data.DurationSecs,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAnswerEvents).
		Columns(
			"sequence", "timestamp", "session_id", "mode", "country", "expected",
			"given", "outcome", "correct", "streak", "time_ms",
		).
		Values(
			seqNum, time.Now().UTC(), data.SessionID, data.Mode, data.Country, data.Expected,
			data.Given, data.Outcome, data.Correct, data.Streak, data.TimeMs,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) ModeStats(ctx context.Context) ([]ModeStat, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(tableAnswerEvents)
	query, args := b.Select(t.C("mode"), t.C("outcome"), entsql.Count("*")).
		From(t).
		GroupBy(t.C("mode"), t.C("outcome")).
		OrderBy(t.C("mode")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mode stats: %w", err)
	}
	defer rows.Close()

	var stats []ModeStat
	for rows.Next() {
		var (
			mode, outcome string
			n             int
		)
		if err := rows.Scan(&mode, &outcome, &n); err != nil {
			return nil, fmt.Errorf("scan mode stats: %w", err)
		}
		if len(stats) == 0 || stats[len(stats)-1].Mode != mode {
			stats = append(stats, ModeStat{Mode: mode})
		}
		ms := &stats[len(stats)-1]
		switch outcome {
		case "correct":
			ms.Attempted += n
			ms.Correct += n
		case "skipped":
			ms.Skipped += n
		default:
			ms.Attempted += n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mode stats: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) SessionCount(ctx context.Context) (int, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(tableSessionEvents)
	query, args := b.Select(entsql.Count("*")).
		From(t).
		Where(entsql.EQ(t.C("action"), "start")).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (r *eventRepo) BestStreak(ctx context.Context) (int, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(tableAnswerEvents)
	query, args := b.Select(entsql.Max(t.C("streak"))).
		From(t).
		Query()

	var best sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&best); err != nil {
		return 0, fmt.Errorf("query best streak: %w", err)
	}
	return int(best.Int64), nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(tableSessionEvents)
	sel := b.Select(
		t.C("session_id"), t.C("timestamp"), t.C("answered"), t.C("correct_answers"),
		t.C("skipped"), t.C("best_streak"), t.C("duration_secs"),
	).
		From(t).
		Where(entsql.EQ(t.C("action"), "end")).
		OrderBy(entsql.Desc(t.C("sequence")))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(
			&rec.SessionID, &rec.Timestamp, &rec.Answered, &rec.CorrectAnswers,
			&rec.Skipped, &rec.BestStreak, &rec.DurationSecs,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return records, nil
}

func (r *eventRepo) ResetHistory(ctx context.Context) error {
	b := entsql.Dialect(dialect.SQLite)
	for _, table := range []string{tableAnswerEvents, tableSessionEvents} {
		query, args := b.Delete(table).Query()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
