package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vvka-141/jlb/pkg/jlb"
)

func resetBrowseFlags() {
	browseFlags = browseFlagValues{depth: jlb.DefaultRenderDepth}
}

func resetLoadFlags() {
	loadFlags = loadFlagValues{
		table:     jlb.DefaultTableName,
		batchSize: jlb.DefaultBatchSize,
		timeout:   10 * time.Minute,
	}
}

func resetStatsFlags() {
	statsFlags = statsFlagValues{samples: jlb.DefaultStatsSampleSize}
}

func clearConnEnv(t *testing.T) {
	t.Helper()
	for _, envVar := range []string{
		"JLB_CONNECTION_STRING", "DATABASE_URL",
		"PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGSSLMODE",
	} {
		t.Setenv(envVar, "")
	}
}

func writeTempDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestBrowseCmd_ArgsValidation(t *testing.T) {
	err := browseCmd.Args(browseCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
	exitCode := jlb.ExitCodeForError(err)
	if exitCode != jlb.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", jlb.ExitUsageError, exitCode, err)
	}
}

func TestBrowseCmd_ArgsValidation_TooMany(t *testing.T) {
	err := browseCmd.Args(browseCmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("Expected error for too many args")
	}
}

func TestBrowseCmd_NonexistentDataset(t *testing.T) {
	resetBrowseFlags()

	err := runBrowse(browseCmd, []string{"/nonexistent/path/abc123.jsonl"})
	if err == nil {
		t.Fatal("Expected error for nonexistent dataset")
	}
	if !errors.Is(err, jlb.ErrDatasetNotFound) {
		t.Errorf("Expected ErrDatasetNotFound, got: %v", err)
	}
}

func TestBrowseCmd_NegativeDepthRejected(t *testing.T) {
	resetBrowseFlags()
	browseFlags.depth = -1

	err := runBrowse(browseCmd, []string{writeTempDataset(t, `{"a": 1}`+"\n")})
	if err == nil {
		t.Fatal("Expected error for negative depth")
	}
	if !errors.Is(err, jlb.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestBrowseCmd_YAMLDefaults(t *testing.T) {
	resetBrowseFlags()

	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "records.jsonl")
	if err := os.WriteFile(datasetPath, []byte(`{"a": 1}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	yamlContent := "browse:\n  depth: 4\n  no_color: true\n"
	if err := os.WriteFile(filepath.Join(dir, "jlb.yaml"), []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := buildBrowseConfig(browseCmd, datasetPath, false)
	if err != nil {
		t.Fatalf("buildBrowseConfig: %v", err)
	}
	if cfg.RenderDepth != 4 {
		t.Errorf("Expected depth 4 from jlb.yaml, got %d", cfg.RenderDepth)
	}
	if !cfg.NoColor {
		t.Error("Expected no_color true from jlb.yaml")
	}
}

func TestLoadCmd_ArgsValidation(t *testing.T) {
	err := loadCmd.Args(loadCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
	exitCode := jlb.ExitCodeForError(err)
	if exitCode != jlb.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", jlb.ExitUsageError, exitCode, err)
	}
}

func TestLoadCmd_MissingDatabase(t *testing.T) {
	resetLoadFlags()
	clearConnEnv(t)
	loadFlags.host = "localhost"

	_, _, err := buildLoadConfig(loadCmd, writeTempDataset(t, `{"a": 1}`+"\n"), false)
	if err == nil {
		t.Fatal("Expected error for missing database")
	}
	if !errors.Is(err, jlb.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLoadCmd_ConflictingConnectionSources(t *testing.T) {
	resetLoadFlags()
	clearConnEnv(t)
	loadFlags.connection = "postgresql://localhost/mydb"
	loadFlags.host = "elsewhere"

	_, _, err := buildLoadConfig(loadCmd, writeTempDataset(t, `{"a": 1}`+"\n"), false)
	if err == nil {
		t.Fatal("Expected error for conflicting connection sources")
	}
	if !errors.Is(err, jlb.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLoadCmd_InvalidTableName(t *testing.T) {
	resetLoadFlags()
	clearConnEnv(t)
	loadFlags.connection = "postgresql://localhost/mydb"
	loadFlags.table = "bad;table"

	_, _, err := buildLoadConfig(loadCmd, writeTempDataset(t, `{"a": 1}`+"\n"), false)
	if err == nil {
		t.Fatal("Expected error for invalid table name")
	}
	if !strings.Contains(err.Error(), "identifier") {
		t.Errorf("Expected identifier error, got: %v", err)
	}
}

func TestLoadCmd_YAMLDefaults(t *testing.T) {
	resetLoadFlags()
	clearConnEnv(t)

	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "records.jsonl")
	if err := os.WriteFile(datasetPath, []byte(`{"a": 1}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	yamlContent := `connection:
  host: yamlhost
  database: yamldb
load:
  table: yaml_table
  batch_size: 250
`
	if err := os.WriteFile(filepath.Join(dir, "jlb.yaml"), []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	loadConfig, connConfig, err := buildLoadConfig(loadCmd, datasetPath, false)
	if err != nil {
		t.Fatalf("buildLoadConfig: %v", err)
	}
	if connConfig.Host != "yamlhost" {
		t.Errorf("Expected host from jlb.yaml, got %q", connConfig.Host)
	}
	if connConfig.Database != "yamldb" {
		t.Errorf("Expected database from jlb.yaml, got %q", connConfig.Database)
	}
	if loadConfig.Table != "yaml_table" {
		t.Errorf("Expected table from jlb.yaml, got %q", loadConfig.Table)
	}
	if loadConfig.BatchSize != 250 {
		t.Errorf("Expected batch size from jlb.yaml, got %d", loadConfig.BatchSize)
	}
}

func TestStatsCmd_ArgsValidation(t *testing.T) {
	err := statsCmd.Args(statsCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
	exitCode := jlb.ExitCodeForError(err)
	if exitCode != jlb.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", jlb.ExitUsageError, exitCode, err)
	}
}

func TestStatsCmd_NonexistentDataset(t *testing.T) {
	resetStatsFlags()

	err := runStats(statsCmd, []string{"/nonexistent/path/abc123.jsonl"})
	if err == nil {
		t.Fatal("Expected error for nonexistent dataset")
	}
	if !errors.Is(err, jlb.ErrDatasetNotFound) {
		t.Errorf("Expected ErrDatasetNotFound, got: %v", err)
	}
}

func TestStatsCmd_ValidDataset(t *testing.T) {
	resetStatsFlags()

	err := runStats(statsCmd, []string{writeTempDataset(t, `{"a": 1}
{"a": 2}
`)})
	if err != nil {
		t.Fatalf("Expected stats to succeed, got: %v", err)
	}
}
