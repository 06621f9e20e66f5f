package requestlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenEmptyPathDisables(t *testing.T) {
	l, err := Open("")
	if err != nil {
		t.Fatalf("Open with empty path must not fail: %v", err)
	}
	if l != nil {
		t.Fatalf("expected nil logger for empty path")
	}
	// nil receiver is a no-op, not a panic
	l.ObserveRequest("XML_DM_REQUEST", "https://example.org")
	l.Close()
}

func TestObserveRequestWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.log")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	l.ObserveRequest("XML_STOPFINDER_REQUEST", "https://efa.example.org/apb/XML_STOPFINDER_REQUEST?name_sf=Bozen")
	l.ObserveRequest("XML_DM_REQUEST", "https://efa.example.org/apb/XML_DM_REQUEST?name_dm=400145")
	l.Close()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		var entry struct {
			Timestamp string `json:"timestamp"`
			Endpoint  string `json:"endpoint"`
			URL       string `json:"url"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines, err)
		}
		if entry.Timestamp == "" || entry.Endpoint == "" || entry.URL == "" {
			t.Errorf("line %d missing fields: %s", lines, scanner.Text())
		}
	}
	if lines != 2 {
		t.Errorf("expected 2 log lines, got %d", lines)
	}
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.log")
	for i := 0; i < 2; i++ {
		l, err := Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		l.ObserveRequest("XML_DM_REQUEST", "https://example.org")
		l.Close()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	var lines int
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("reopening must append, got %d lines", lines)
	}
}
