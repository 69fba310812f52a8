package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	original := &Session{
		CLIVersion:   "v1.0.4",
		Model:        "llama3.1",
		SystemPrompt: "Be brief.",
		Temperature:  0.9,
		History: []ChatMessage{
			{Role: RoleUser, Content: "Hello", Time: now},
			{Role: RoleAssistant, Content: "Hi there!", Time: now.Add(2 * time.Second)},
			{Role: RoleUser, Content: "Bye", Time: now.Add(time.Minute)},
		},
	}

	data, err := EncodeSession(original)
	if err != nil {
		t.Fatalf("EncodeSession failed: %v", err)
	}

	restored, err := DecodeSession(data)
	if err != nil {
		t.Fatalf("DecodeSession failed: %v", err)
	}

	if restored.CLIVersion != original.CLIVersion ||
		restored.Model != original.Model ||
		restored.SystemPrompt != original.SystemPrompt ||
		restored.Temperature != original.Temperature {
		t.Errorf("Session metadata mismatch: %+v", restored)
	}
	if len(restored.History) != len(original.History) {
		t.Fatalf("Expected %d messages, got %d", len(original.History), len(restored.History))
	}
	for i, msg := range restored.History {
		if msg.Role != original.History[i].Role || msg.Content != original.History[i].Content {
			t.Errorf("Message %d mismatch: got %s/%q, want %s/%q",
				i, msg.Role, msg.Content, original.History[i].Role, original.History[i].Content)
		}
		if !msg.Time.Equal(original.History[i].Time) {
			t.Errorf("Message %d timestamp mismatch: got %v, want %v", i, msg.Time, original.History[i].Time)
		}
	}
}

func TestDecodeSession_BadTimestampFallsBack(t *testing.T) {
	raw := `{
		"cli_version": "v1.0.4",
		"model": "llama3.1",
		"system_prompt": "",
		"temperature": 0.7,
		"history": [
			{"role": "user", "content": "Hello", "timestamp": "not-a-timestamp"},
			{"role": "assistant", "content": "Hi", "timestamp": "2025-06-15T10:30:00Z"}
		]
	}`

	before := time.Now()
	session, err := DecodeSession([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeSession failed: %v", err)
	}

	if len(session.History) != 2 {
		t.Fatalf("A bad timestamp must not drop the record; got %d messages", len(session.History))
	}
	if session.History[0].Content != "Hello" {
		t.Errorf("Expected content preserved, got %q", session.History[0].Content)
	}
	if session.History[0].Time.Before(before) {
		t.Errorf("Expected substituted current time, got %v", session.History[0].Time)
	}
	want := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	if !session.History[1].Time.Equal(want) {
		t.Errorf("Valid timestamp must parse exactly, got %v", session.History[1].Time)
	}
}

func TestDecodeSession_MissingTemperatureDefaults(t *testing.T) {
	raw := `{"cli_version": "v1.0.4", "model": "m", "history": []}`
	session, err := DecodeSession([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeSession failed: %v", err)
	}
	if session.Temperature != 0.7 {
		t.Errorf("Expected default temperature 0.7, got %v", session.Temperature)
	}
}

func TestDecodeSession_Malformed(t *testing.T) {
	if _, err := DecodeSession([]byte("{broken")); err == nil {
		t.Error("Expected error for malformed session file")
	}
}

func TestSaveLoadSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "session.json")

	session := &Session{
		CLIVersion:  "v1.0.4",
		Model:       "llama3.1",
		Temperature: 0.7,
		History: []ChatMessage{
			{Role: RoleUser, Content: "ping", Time: time.Now()},
		},
	}

	if err := SaveSession(path, session); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected session file on disk: %v", err)
	}

	loaded, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded.Model != "llama3.1" || len(loaded.History) != 1 {
		t.Errorf("Loaded session mismatch: %+v", loaded)
	}
}

func TestResolveSessionPath(t *testing.T) {
	bare := ResolveSessionPath("mysession.json")
	if filepath.Dir(bare) != DefaultSessionDir() {
		t.Errorf("Bare filename must land in the default dir, got %q", bare)
	}

	explicit := filepath.Join(string(filepath.Separator), "tmp", "s.json")
	if got := ResolveSessionPath(explicit); got != explicit {
		t.Errorf("Explicit path must be kept, got %q", got)
	}
}

func TestGenerateSessionFilename(t *testing.T) {
	name := GenerateSessionFilename()
	if filepath.Ext(name) != ".json" {
		t.Errorf("Expected .json filename, got %q", name)
	}
	if len(name) != len("session_20060102_150405.json") {
		t.Errorf("Unexpected filename shape: %q", name)
	}
}
