package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// DatasetCache holds the last good manifest JSON under a fixed key.
type DatasetCache struct {
	ent.Schema
}

func (DatasetCache) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			NotEmpty(),
		field.Text("value"),
		field.Time("updated_at"),
	}
}
