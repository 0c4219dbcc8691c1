package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{snapshotsTableName, formEventsTableName, llmRequestsTableName} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestSnapshotLoadMissing(t *testing.T) {
	s := openTestStore(t)
	data, ok, err := s.SnapshotRepo().Load(context.Background(), "formData")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok || data != nil {
		t.Errorf("expected missing snapshot, got ok=%v data=%q", ok, data)
	}
}

func TestSnapshotSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, "formData", []byte(`{"name":"Ada"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, "formData", []byte(`{"name":"Grace"}`)); err != nil {
		t.Fatalf("save again: %v", err)
	}

	data, ok, err := repo.Load(ctx, "formData")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("expected snapshot to exist")
	}
	if string(data) != `{"name":"Grace"}` {
		t.Errorf("data = %s, want the second write", data)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}
}

func TestSnapshotDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for _, k := range []string{"formData", "formCategories", "other"} {
		if err := repo.Save(ctx, k, []byte("{}")); err != nil {
			t.Fatalf("save %s: %v", k, err)
		}
	}

	if err := repo.Delete(ctx, "formData", "formCategories", "never-written"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for k, want := range map[string]bool{"formData": false, "formCategories": false, "other": true} {
		_, ok, err := repo.Load(ctx, k)
		if err != nil {
			t.Fatalf("load %s: %v", k, err)
		}
		if ok != want {
			t.Errorf("%s present = %v, want %v", k, ok, want)
		}
	}

	if err := repo.Delete(ctx); err != nil {
		t.Errorf("delete with no keys: %v", err)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Open already seeded the counter; a second counter shares the row.
	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestTablesFromSchema(t *testing.T) {
	byName := map[string]int{}
	all := tables()
	for i, tb := range all {
		byName[tb.Name] = i
	}

	snap := all[byName[snapshotsTableName]]
	if len(snap.PrimaryKey) != 1 || snap.PrimaryKey[0].Name != "name" {
		t.Errorf("snapshots primary key = %v, want name", snap.PrimaryKey)
	}

	forms := all[byName[formEventsTableName]]
	if len(forms.PrimaryKey) != 1 || !forms.PrimaryKey[0].Increment {
		t.Error("form_events should get an auto-increment id")
	}
	seq, ok := forms.Column("sequence")
	if !ok || !seq.Unique {
		t.Error("sequence should be a unique column")
	}
	ts, ok := forms.Column("timestamp")
	if !ok || ts.Default != nil {
		t.Error("timestamp should have no column default")
	}
	if _, ok := forms.Index("form_events_session_id"); !ok {
		t.Error("missing session_id index")
	}

	llm := all[byName[llmRequestsTableName]]
	body, ok := llm.Column("request_body")
	if !ok || body.Size != 1<<20 {
		t.Error("request_body should be sized to 1 MiB")
	}
}
