package store

import (
	"context"
	"time"
)

// SessionEventData captures the data for a session start or end event.
type SessionEventData struct {
	SessionID      string
	Action         string // "start" or "end"
	ItemCount      int
	Origin         string
	Answered       int
	CorrectAnswers int
	Skipped        int
	BestStreak     int
	DurationSecs   int
}

// AnswerEventData captures one answered or skipped question.
type AnswerEventData struct {
	SessionID string
	Mode      string
	Country   string
	Expected  string
	Given     string
	Outcome   string
	Correct   bool
	Streak    int
	TimeMs    int
}

// ModeStat aggregates answer events for one question mode.
type ModeStat struct {
	Mode      string
	Attempted int
	Correct   int
	Skipped   int
}

// SessionRecord is a finished run read back from the event log.
type SessionRecord struct {
	SessionID      string
	Timestamp      time.Time
	Answered       int
	CorrectAnswers int
	Skipped        int
	BestStreak     int
	DurationSecs   int
}

// EventRepo provides append and query access to quiz events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one answered or skipped question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// ModeStats returns per-mode totals over all answer events, ordered by
	// mode slug.
	ModeStats(ctx context.Context) ([]ModeStat, error)

	// SessionCount returns the number of started sessions.
	SessionCount(ctx context.Context) (int, error)

	// BestStreak returns the longest streak ever recorded, or 0.
	BestStreak(ctx context.Context) (int, error)

	// RecentSessions returns up to limit finished sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// ResetHistory deletes all session and answer events.
	ResetHistory(ctx context.Context) error
}
