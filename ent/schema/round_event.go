package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// RoundEvent records a finalized quiz round. It is an audit record only;
// rounds are never resumed from it.
type RoundEvent struct {
	ent.Schema
}

func (RoundEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (RoundEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the practice session"),
		field.String("role").
			Comment("Target role from the candidate profile"),
		field.String("skills").
			Default("").
			Comment("Comma-separated skills"),
		field.Int("experience_years").
			Default(0),
		field.Int("question_count").
			Default(0).
			Comment("Questions loaded for the round"),
		field.Int("correct").
			Default(0),
		field.Int("wrong").
			Default(0),
		field.Text("summary").
			Default("").
			Comment("Per-question summary lines sent for feedback"),
	}
}

func (RoundEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("role"),
	}
}
