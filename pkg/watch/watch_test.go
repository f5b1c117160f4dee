package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coolbeans/kolaw/pkg/pipeline"
)

const payload = `소득세법 [시행 2025. 7. 1.] [법률 제20613호, 2024. 12. 31., 일부개정]
제1조(목적) 이 법은 소득세의 과세 요건을 정함을 목적으로 한다.`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watch.yaml")
	data := `interval: 30s
sources:
  - name: sodeuk
    path: /var/cache/kolaw/sodeuk.txt
    shape: text
    output: /var/out/sodeuk.md
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Interval != 30*time.Second {
		t.Errorf("interval = %v", cfg.Interval)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Shape != "text" {
		t.Errorf("sources = %+v", cfg.Sources)
	}
}

func TestLoadConfigDefaultInterval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watch.yaml")
	if err := os.WriteFile(path, []byte("sources: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Interval != DefaultInterval {
		t.Errorf("interval = %v, want default %v", cfg.Interval, DefaultInterval)
	}
}

func TestInputForShape(t *testing.T) {
	if _, err := InputForShape("text", []byte(payload)); err != nil {
		t.Errorf("text: %v", err)
	}
	if _, err := InputForShape("tree", []byte("<법령></법령>")); err != nil {
		t.Errorf("tree: %v", err)
	}
	if _, err := InputForShape("index", []byte(`<select><option value="1">제1조</option></select>`)); err != nil {
		t.Errorf("index: %v", err)
	}
	if _, err := InputForShape("csv", nil); err == nil {
		t.Error("unknown shape must fail")
	}
}

func TestExtractFileWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sodeuk.txt")
	out := filepath.Join(dir, "sodeuk.md")
	record := filepath.Join(dir, "sodeuk.json")
	if err := os.WriteFile(src, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := ExtractFile(Source{Name: "sodeuk", Path: src, Shape: "text", Output: out, Record: record})
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if result.Document.Title != "소득세법" {
		t.Errorf("title = %q", result.Document.Title)
	}

	md, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("markdown output: %v", err)
	}
	if !strings.Contains(string(md), "# 소득세법") {
		t.Errorf("markdown output:\n%s", md)
	}

	rec, err := os.ReadFile(record)
	if err != nil {
		t.Fatalf("record output: %v", err)
	}
	if !strings.Contains(string(rec), `"title"`) {
		t.Errorf("record output:\n%s", rec)
	}
}

func TestPollTriggersOnChange(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sodeuk.txt")
	if err := os.WriteFile(src, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls int
	watcher := New(
		&Config{Interval: DefaultInterval, Sources: []Source{{Name: "sodeuk", Path: src, Shape: "text"}}},
		func(source Source, result *pipeline.Result, err error) {
			calls++
			if err != nil {
				t.Errorf("handler error: %v", err)
			}
		},
	)

	// First pass always extracts; an unchanged file does not re-trigger.
	watcher.Poll()
	watcher.Poll()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	// A rewrite with new content and mtime triggers again.
	if err := os.WriteFile(src, []byte(payload+"\n제2조(정의) 생략"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(src, future, future); err != nil {
		t.Fatal(err)
	}
	watcher.Poll()
	if calls != 2 {
		t.Fatalf("calls = %d, want 2 after rewrite", calls)
	}
}

// A rewrite must re-trigger through the filesystem event loop alone: the
// fallback interval is set far beyond the test's deadline.
func TestRunReactsToFileEvents(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sodeuk.txt")
	if err := os.WriteFile(src, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	calls := make(chan *pipeline.Result, 4)
	watcher := New(
		&Config{Interval: time.Hour, Sources: []Source{{Name: "sodeuk", Path: src, Shape: "text"}}},
		func(source Source, result *pipeline.Result, err error) {
			if err != nil {
				t.Errorf("handler error: %v", err)
				return
			}
			calls <- result
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// Initial scan materializes the existing file.
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("initial extraction never fired")
	}

	if err := os.WriteFile(src, []byte(payload+"\n제2조(정의) 용어의 뜻은 다음과 같다."), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case result := <-calls:
		if got := len(result.Document.Articles()); got != 2 {
			t.Errorf("re-extraction saw %d articles, want 2", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("rewrite never triggered re-extraction")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestPollSkipsMissingFile(t *testing.T) {
	watcher := New(
		&Config{Sources: []Source{{Name: "ghost", Path: "/nonexistent/ghost.txt", Shape: "text"}}},
		func(Source, *pipeline.Result, error) {
			t.Error("handler must not fire for a missing file")
		},
	)
	watcher.Poll()
}
