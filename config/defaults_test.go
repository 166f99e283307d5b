package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"BMPResize/rules"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, Config{}) {
		t.Errorf("cfg = %+v, want zero value", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resize.yml")
	data := []byte(`verbose: true
bufferSize: 4096
rules:
  - "Planes == 1"
  - "ColorsUsed == 0"
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path, nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		Verbose:    true,
		BufferSize: 4096,
		Rules:      []string{"Planes == 1", "ColorsUsed == 0"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("cfg = %+v\nwant %+v", cfg, want)
	}

	rs, err := cfg.RuleSet()
	if err != nil {
		t.Fatalf("RuleSet: %v", err)
	}
	if rs.Len() != len(rules.Default)+2 {
		t.Errorf("RuleSet has %d rules, want %d", rs.Len(), len(rules.Default)+2)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Config{}) {
		t.Errorf("cfg = %+v, want zero value", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":     "verbos: true\n",
		"wrong type":      "bufferSize: lots\n",
		"negative buffer": "bufferSize: -1\n",
		"bad rule":        "rules:\n  - \"Width ==\"\n",
		"empty rule":      "rules:\n  - \"\"\n",
		"not yaml":        "rules: [\n",
	}
	for name, doc := range tests {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: Parse succeeded, want error", name)
		}
	}
}

func TestLoadConfigLogsToGivenLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resize.yml")
	if err := os.WriteFile(path, []byte("rules:\n  - \"Planes == 1\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var logBuf bytes.Buffer
	if _, err := LoadConfig(path, log.New(&logBuf, "", 0)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !strings.Contains(logBuf.String(), "Loaded configuration from "+path) {
		t.Errorf("log output %q", logBuf.String())
	}

	typed := filepath.Join(dir, "typed.yml")
	if err := os.WriteFile(typed, []byte("- not\n- a map\n"), 0644); err != nil {
		t.Fatal(err)
	}
	logBuf.Reset()
	if _, err := LoadConfig(typed, log.New(&logBuf, "", 0)); err == nil {
		t.Fatal("LoadConfig succeeded on a YAML list")
	}
	if !strings.Contains(logBuf.String(), "YAML unmarshal error in "+typed) {
		t.Errorf("type error not logged: %q", logBuf.String())
	}
}
