package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// FormEvent records a wizard progression step: data saved, form completed,
// navigation, blocked access or reset.
type FormEvent struct {
	ent.Schema
}

func (FormEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (FormEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Comment("UUID of the process that recorded the event"),
		field.String("action").
			NotEmpty().
			Comment("data_updated, form_completed, navigated, blocked, finished or reset"),
		field.String("category_id").
			Default(""),
		field.String("form_id").
			Default(""),
		field.String("route").
			Default("").
			Comment("Route requested by the step, if any"),
		field.String("detail").
			Default("").
			Comment("Reason for blocked steps or the changed keys"),
	}
}

func (FormEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
		index.Fields("form_id"),
	}
}
