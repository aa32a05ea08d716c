package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one answered or skipped question.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("mode").
			NotEmpty().
			Comment("Question mode slug"),
		field.String("country").
			NotEmpty().
			Comment("Country of the asked item"),
		field.String("expected").
			Default("").
			Comment("The answer the mode asks for"),
		field.String("given").
			Default("").
			Comment("What the player typed or picked"),
		field.String("outcome").
			NotEmpty().
			Comment("correct, wrong or skipped"),
		field.Bool("correct").
			Default(false),
		field.Int("streak").
			Default(0).
			Comment("Streak after this answer"),
		field.Int("time_ms").
			Default(0).
			Comment("Milliseconds to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("mode"),
		index.Fields("correct"),
	}
}
