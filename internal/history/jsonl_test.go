package history

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJSONLSink_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewJSONLSink(dir)
	if err != nil {
		t.Fatal(err)
	}

	s := NewStore(sink)
	if _, err := s.Record("chat", "first", "body one", map[string]string{"prompt": "hello"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Record("consent", "second", "", map[string]string{"execution_id": "exec-9"}); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	items := loaded.All()
	if len(items) != 2 {
		t.Fatalf("loaded %d items", len(items))
	}
	if items[0].Label != "second" || items[1].Label != "first" {
		t.Errorf("order = [%s, %s]", items[0].Label, items[1].Label)
	}
	if items[1].Details["prompt"] != "hello" {
		t.Errorf("details = %v", items[1].Details)
	}
	// Rehydrated items are filterable again.
	if got := len(loaded.Filter("exec-9")); got != 1 {
		t.Errorf("Filter(exec-9) = %d", got)
	}
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	loaded, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 0 {
		t.Errorf("len = %d", loaded.Len())
	}
}

func TestLoadDir_SkipsUnparseableLines(t *testing.T) {
	dir := t.TempDir()
	content := `{"id":"a","kind":"chat","label":"good","timestamp":"2026-08-30T10:00:00Z"}
not json at all
{"id":"b","kind":"chat","label":"also good","timestamp":"2026-08-30T11:00:00Z"}
`
	if err := os.WriteFile(filepath.Join(dir, "2026-08-30.jsonl"), []byte(content), 0o640); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("len = %d", loaded.Len())
	}
	if loaded.All()[0].Label != "also good" {
		t.Errorf("newest first, got %q", loaded.All()[0].Label)
	}
}
