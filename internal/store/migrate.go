package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/geoquiz/ent/schema"
)

// Table names.
const (
	tableDatasetCache  = "dataset_cache"
	tableSessionEvents = "session_events"
	tableAnswerEvents  = "answer_events"
)

// Tables returns the migration tables derived from the ent schemas.
func Tables() []*schema.Table {
	return []*schema.Table{
		tableOf(tableDatasetCache, entschema.DatasetCache{}),
		tableOf(tableSessionEvents, entschema.SessionEvent{}),
		tableOf(tableAnswerEvents, entschema.AnswerEvent{}),
	}
}

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, Tables()...)
}

// tableOf builds a table from an ent schema: an auto-increment id, the
// mixin fields, then the schema's own fields and indexes.
func tableOf(name string, s ent.Interface) *schema.Table {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	columns := []*schema.Column{{Name: "id", Type: field.TypeInt, Increment: true}}
	byName := make(map[string]*schema.Column, len(fields))
	for _, f := range fields {
		c := columnOf(f.Descriptor())
		columns = append(columns, c)
		byName[c.Name] = c
	}

	t := &schema.Table{
		Name:       name,
		Columns:    columns,
		PrimaryKey: []*schema.Column{columns[0]},
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		ix := &schema.Index{
			Name:   strings.TrimSuffix(name, "s") + "_" + strings.Join(d.Fields, "_"),
			Unique: d.Unique,
		}
		for _, fn := range d.Fields {
			if c, ok := byName[fn]; ok {
				ix.Columns = append(ix.Columns, c)
			}
		}
		t.Indexes = append(t.Indexes, ix)
	}
	return t
}

func columnOf(d *field.Descriptor) *schema.Column {
	c := &schema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Unique:   d.Unique,
		Nullable: d.Optional,
		Size:     int64(d.Size),
	}
	if d.StorageKey != "" {
		c.Name = d.StorageKey
	}
	// Function defaults such as time.Now are applied by the caller.
	switch v := d.Default.(type) {
	case string, bool, int, int64, float64:
		c.Default = v
	}
	return c
}
