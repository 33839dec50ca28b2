package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tbourn/go-coach-backend/internal/config"
	"github.com/tbourn/go-coach-backend/internal/llm"
)

// useFakeCompleter classifies every document as CAREER and answers
// questions with a fixed reply. It returns the requests seen.
func useFakeCompleter(t *testing.T) *[]llm.Request {
	t.Helper()
	var seen []llm.Request
	old := newCompleter
	newCompleter = func(config.LLMConfig) (llm.Completer, error) {
		return llm.CompleterFunc(func(_ context.Context, req llm.Request) (string, error) {
			seen = append(seen, req)
			if strings.HasPrefix(req.Prompt, "Analyze this document") {
				return "CAREER", nil
			}
			return "Block two hours for deep work.", nil
		}), nil
	}
	t.Cleanup(func() { newCompleter = old })
	return &seen
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "coach.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LLM_API_KEY", "test-key")
	return dir
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Flags on the shared command tree survive between executions.
	_ = clearCmd.Flags().Set("yes", "false")
	_ = askCmd.Flags().Set("category", "")
	_ = documentsCmd.Flags().Set("category", "")
	_ = rootCmd.PersistentFlags().Set("db", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const goals = `Career goals for this year.

I want to move into a staff engineer role and mentor two junior developers on the team.`

func TestIngestDocumentsAskClear(t *testing.T) {
	dir := setupEnv(t)
	seen := useFakeCompleter(t)

	goalsPath := writeFile(t, dir, "goals.md", goals)
	imgPath := writeFile(t, dir, "photo.png", "not text")

	out, err := run(t, "ingest", goalsPath, imgPath)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if !strings.Contains(out, "goals.md → CAREER (1 chunks)") || !strings.Contains(out, "skipped") {
		t.Fatalf("unexpected ingest output:\n%s", out)
	}
	if !strings.Contains(out, "1 of 2 file(s) ingested") {
		t.Fatalf("missing summary:\n%s", out)
	}

	// Re-ingesting is a reported no-op.
	out, _ = run(t, "ingest", goalsPath)
	if !strings.Contains(out, "duplicate") {
		t.Fatalf("expected duplicate report:\n%s", out)
	}

	// A fresh process sees the saved library.
	out, err = run(t, "documents")
	if err != nil || !strings.Contains(out, "goals.md") || !strings.Contains(out, "CAREER") {
		t.Fatalf("documents: %v\n%s", err, out)
	}
	out, _ = run(t, "documents", "--category", "HEALTH")
	if !strings.Contains(out, "no documents") {
		t.Fatalf("category filter not applied:\n%s", out)
	}

	out, err = run(t, "ask", "--category", "career", "how", "do", "I", "become", "staff", "engineer?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.Contains(out, "Block two hours for deep work.") || !strings.Contains(out, "Sources: goals.md") {
		t.Fatalf("unexpected answer:\n%s", out)
	}
	last := (*seen)[len(*seen)-1]
	if !strings.Contains(last.Prompt, `QUESTION: "how do I become staff engineer?"`) {
		t.Fatalf("question not forwarded:\n%s", last.Prompt)
	}

	if _, err := run(t, "clear"); err == nil {
		t.Fatalf("clear without --yes must fail")
	}
	if out, _ := run(t, "documents"); !strings.Contains(out, "goals.md") {
		t.Fatalf("refused clear must keep data")
	}

	if _, err := run(t, "clear", "--yes"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if out, _ := run(t, "documents"); !strings.Contains(out, "no documents") {
		t.Fatalf("clear must remove documents:\n%s", out)
	}
}

func TestAsk_RejectsUnknownCategory(t *testing.T) {
	setupEnv(t)
	useFakeCompleter(t)

	if _, err := run(t, "ask", "--category", "bogus", "hello"); err == nil {
		t.Fatalf("expected unknown category error")
	}
}

func TestSettingsShowAndReset(t *testing.T) {
	dir := setupEnv(t)
	useFakeCompleter(t)

	override := writeFile(t, dir, "defaults.yaml", "communication_style:\n  directness_level: 3\n")
	t.Setenv("COACH_DEFAULTS_PATH", override)

	out, err := run(t, "settings", "show")
	if err != nil {
		t.Fatalf("settings show: %v", err)
	}
	if !strings.Contains(out, `"directness_level": 3`) || !strings.Contains(out, `"challenge_approach": 6`) {
		t.Fatalf("defaults override not applied:\n%s", out)
	}

	out, err = run(t, "settings", "reset")
	if err != nil || !strings.Contains(out, `"alignment_principles"`) {
		t.Fatalf("settings reset: %v\n%s", err, out)
	}
}

func TestDBFlagOverridesEnv(t *testing.T) {
	dir := setupEnv(t)
	useFakeCompleter(t)

	other := filepath.Join(dir, "other.db")
	if _, err := run(t, "--db", other, "documents"); err != nil {
		t.Fatalf("documents: %v", err)
	}
	if _, err := os.Stat(other); err != nil {
		t.Fatalf("--db path not used: %v", err)
	}
}

func TestNewServer_UsesConfig(t *testing.T) {
	setupEnv(t)
	useFakeCompleter(t)

	c, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	c.Port = "9999"
	c.GinMode = "test"

	a, err := newApp(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	srv := newServer(a, c)
	if srv.Addr != ":9999" || srv.ReadHeaderTimeout != c.ReadHeaderTimeout || srv.Handler == nil {
		t.Fatalf("unexpected server: %+v", srv)
	}
}
