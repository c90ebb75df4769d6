package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/repr"
)

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "golox-config")
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMissingGivesDefaults(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("got %s", repr.String(cfg))
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, FileName)
	if err := ioutil.WriteFile(path, []byte("prompt: \"lox> \"\nmax_call_depth: 64\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Prompt = "lox> "
	want.MaxCallDepth = 64
	if cfg != want {
		t.Errorf("got %s, want %s", repr.String(cfg), repr.String(want))
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, FileName)
	if err := ioutil.WriteFile(path, []byte("max_call_depth: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed settings")
	}
}

func TestWriteThenLoad(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, FileName)
	cfg := Config{Prompt: ">> ", History: "/tmp/hist", LogLevel: "DEBUG", MaxCallDepth: 0}
	if err := Write(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Errorf("got %s, want %s", repr.String(got), repr.String(cfg))
	}
}

func TestLocateExplicit(t *testing.T) {
	if got := Locate("custom.yaml"); got != "custom.yaml" {
		t.Errorf("got %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.golox_history"); got != filepath.Join(home, ".golox_history") {
		t.Errorf("got %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("got %q", got)
	}
}
