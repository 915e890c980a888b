package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCollectLocatorsPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte("39111311\nPMC1234567\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := collectLocators(flags{file: path, pmids: "11111111"})
	if err != nil {
		t.Fatalf("collectLocators: %v", err)
	}
	if strings.Join(got, ",") != "39111311,PMC1234567" {
		t.Fatalf("got %v", got)
	}
}

func TestCollectLocatorsFromFlag(t *testing.T) {
	got, err := collectLocators(flags{pmids: "39111311, 39101671"})
	if err != nil {
		t.Fatalf("collectLocators: %v", err)
	}
	if len(got) != 2 || got[1] != "39101671" {
		t.Fatalf("got %v", got)
	}
}

func TestRootCommandRequiresLocator(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "no PMID provided") {
		t.Fatalf("expected missing locator error, got %v", err)
	}
}

func TestRootCommandRejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"39111311"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}
