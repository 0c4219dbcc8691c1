package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Snapshot holds the latest encoded state blob under a fixed name, such as
// the catalog or the collected form data.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("name").
			MaxLen(64).
			NotEmpty().
			Immutable(),
		field.Bytes("data").
			Comment("Schema-validated JSON"),
		field.Time("updated_at"),
	}
}
