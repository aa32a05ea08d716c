package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records quiz run lifecycle events (start/end).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events of one run"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.Int("item_count").
			Default(0).
			Comment("Pool size at start"),
		field.String("origin").
			Default("").
			Comment("Where the pool came from: source, cache or import"),
		field.Int("answered").
			Default(0).
			Comment("Answered questions (on end only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Correct answers (on end only)"),
		field.Int("skipped").
			Default(0).
			Comment("Skipped questions (on end only)"),
		field.Int("best_streak").
			Default(0).
			Comment("Longest streak (on end only)"),
		field.Int("duration_secs").
			Default(0).
			Comment("Run duration in seconds (on end only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
