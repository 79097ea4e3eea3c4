package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"familytree/internal/config"
	"familytree/internal/repository/sqlite"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "ADD_CHILD Chitra Aria Female\nGET_RELATIONSHIP Lavnya Maternal-Aunt\nGET_RELATIONSHIP Aria Siblings\n")

	cfg := config.DefaultConfig()
	cfg.Snapshot.Path = filepath.Join(dir, "family.db")

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, input, nil, &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	expected := "CHILD_ADDITION_SUCCEED\nAria\nJnki Ahit\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}

	repo, err := sqlite.New(cfg.Snapshot.Path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer repo.Close()
	people, err := repo.ListPeople(context.Background())
	if err != nil {
		t.Fatalf("list people: %v", err)
	}
	if len(people) != 32 {
		t.Errorf("expected 32 people in snapshot, got %d", len(people))
	}
}

func TestRunFromReader(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("GET_RELATIONSHIP Shan DAUGHTER\n")
	if err := Run(context.Background(), config.DefaultConfig(), "-", in, &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.String() != "Satya\n" {
		t.Errorf("expected Satya, got %q", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := Run(context.Background(), cfg, filepath.Join(t.TempDir(), "missing.txt"), nil, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing input")
	}

	cfg.Seed = filepath.Join(t.TempDir(), "missing.yaml")
	if err := Run(context.Background(), cfg, "-", strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing seed")
	}
}

func TestRunCustomSeed(t *testing.T) {
	dir := t.TempDir()
	seed := writeFile(t, dir, "seed.json", `{"father":"Arthur","mother":"Margret","events":[
		{"kind":"child","anchor":"Margret","name":"Bill","gender":"Male"},
		{"kind":"child","anchor":"Margret","name":"Ginerva","gender":"Female"}
	]}`)

	cfg := config.DefaultConfig()
	cfg.Seed = seed

	var out bytes.Buffer
	if err := Query(context.Background(), cfg, "Bill", "SIBLINGS", &out); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if out.String() != "Ginerva\n" {
		t.Errorf("expected Ginerva, got %q", out.String())
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name         string
		person       string
		relationship string
		want         string
	}{
		{"sons", "Shan", "SON", "Chit Ish Vich Aras"},
		{"empty", "Shan", "SIBLINGS", "NONE"},
		{"unknown person", "Nobody", "SON", "PERSON_NOT_FOUND"},
		{"unknown relationship", "Shan", "COUSIN", "NONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := Query(context.Background(), config.DefaultConfig(), tt.person, tt.relationship, &out); err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	dir := t.TempDir()

	var out bytes.Buffer
	if err := Export(ctx, cfg, "yaml", "", &out); err != nil {
		t.Fatalf("yaml export failed: %v", err)
	}
	if !strings.Contains(out.String(), "founders:") {
		t.Errorf("expected yaml document, got:\n%s", out.String())
	}

	jsonPath := filepath.Join(dir, "family.json")
	if err := Export(ctx, cfg, "json", jsonPath, &bytes.Buffer{}); err != nil {
		t.Fatalf("json export failed: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json export: %v", err)
	}
	if !strings.Contains(string(data), `"father"`) {
		t.Errorf("expected json document, got:\n%s", data)
	}

	if err := Export(ctx, cfg, "sqlite", "", &bytes.Buffer{}); err == nil {
		t.Error("expected error for sqlite export without --out")
	}

	dbPath := filepath.Join(dir, "family.db")
	if err := Export(ctx, cfg, "sqlite", dbPath, &bytes.Buffer{}); err != nil {
		t.Fatalf("sqlite export failed: %v", err)
	}
	repo, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer repo.Close()
	events, err := repo.ListEvents(ctx)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 29 {
		t.Errorf("expected 29 events, got %d", len(events))
	}

	if err := Export(ctx, cfg, "xml", "", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestServeShutdown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, cfg)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestWatchRunsOnce(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "GET_RELATIONSHIP Shan SON\n")

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(200*time.Millisecond, cancel)

	var out bytes.Buffer
	if err := Watch(ctx, config.DefaultConfig(), input, &out); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if !strings.Contains(out.String(), "Chit Ish Vich Aras") {
		t.Errorf("expected initial run output, got %q", out.String())
	}
}

func TestInitConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(config.EnvConfigPath, "")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	if err := InitConfig("", false, &out); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	want := filepath.Join(xdg, config.ConfigDirName, "config.yaml")
	if !strings.Contains(out.String(), want) {
		t.Errorf("expected output to name %s, got %q", want, out.String())
	}

	loaded, path, err := config.Load("")
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if path != want {
		t.Errorf("expected config found at %s, got %s", want, path)
	}
	if *loaded != *config.DefaultConfig() {
		t.Errorf("expected default config, got %+v", *loaded)
	}

	if err := InitConfig("", false, &out); err == nil {
		t.Error("expected error when config already exists")
	}
	if err := InitConfig("", true, &out); err != nil {
		t.Errorf("expected --force to overwrite, got %v", err)
	}
}
