package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/formwiz/ent/schema"
)

const (
	snapshotsTableName   = "snapshots"
	formEventsTableName  = "form_events"
	llmRequestsTableName = "llm_request_events"
)

func tables() []*schema.Table {
	return []*schema.Table{
		tableOf(snapshotsTableName, entschema.Snapshot{}),
		tableOf(formEventsTableName, entschema.FormEvent{}),
		tableOf(llmRequestsTableName, entschema.LLMRequestEvent{}),
	}
}

// tableOf turns an ent schema declaration into a migration table. A field
// named "id" becomes the primary key; otherwise an auto-increment integer id
// is added.
func tableOf(name string, s ent.Interface) *schema.Table {
	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := schema.NewTable(name)
	columns := make(map[string]string, len(fields))
	hasID := false
	for _, f := range fields {
		d := f.Descriptor()
		c := columnOf(d)
		columns[d.Name] = c.Name
		if d.Name == "id" {
			t.AddPrimary(c)
			hasID = true
			continue
		}
		t.AddColumn(c)
	}
	if !hasID {
		t.AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			col, ok := columns[f]
			if !ok {
				panic(fmt.Sprintf("store: index on unknown field %q of %s", f, name))
			}
			cols[i] = col
		}
		t.AddIndex(name+"_"+strings.Join(cols, "_"), d.Unique, cols)
	}
	return t
}

func columnOf(d *field.Descriptor) *schema.Column {
	c := &schema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Size:     int64(d.Size),
		Unique:   d.Unique,
		Nullable: d.Optional,
		Comment:  d.Comment,
	}
	if d.StorageKey != "" {
		c.Name = d.StorageKey
	}
	// Go-side defaults such as time.Now have no column equivalent.
	if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
		c.Default = d.Default
	}
	return c
}

// migrate creates or updates the tables through ent's schema migrator.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables()...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
