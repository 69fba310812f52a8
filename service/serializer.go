package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn half in a conversation. History is append-only;
// a message is never mutated after it is appended.
type ChatMessage struct {
	Role    string
	Content string
	Time    time.Time
}

// Session is the persisted state of one chat session.
type Session struct {
	CLIVersion   string
	Model        string
	SystemPrompt string
	Temperature  float64
	History      []ChatMessage
}

// sessionFile is the on-disk JSON shape. Timestamps are RFC3339 strings so
// the file stays readable and portable across clients.
type sessionFile struct {
	CLIVersion   string           `json:"cli_version"`
	Model        string           `json:"model"`
	SystemPrompt string           `json:"system_prompt"`
	Temperature  *float64         `json:"temperature"`
	History      []sessionMessage `json:"history"`
}

type sessionMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// EncodeSession serializes a session to the session-file JSON shape.
func EncodeSession(s *Session) ([]byte, error) {
	temp := s.Temperature
	file := sessionFile{
		CLIVersion:   s.CLIVersion,
		Model:        s.Model,
		SystemPrompt: s.SystemPrompt,
		Temperature:  &temp,
		History:      make([]sessionMessage, 0, len(s.History)),
	}
	for _, msg := range s.History {
		file.History = append(file.History, sessionMessage{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Time.Format(time.RFC3339),
		})
	}
	return json.MarshalIndent(file, "", "  ")
}

// DecodeSession deserializes a session file. Records degrade field-by-field:
// a message whose timestamp does not parse gets the current time instead of
// failing the whole load, and a missing temperature falls back to the
// default rather than zero.
func DecodeSession(data []byte) (*Session, error) {
	var file sessionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}

	session := &Session{
		CLIVersion:   file.CLIVersion,
		Model:        file.Model,
		SystemPrompt: file.SystemPrompt,
		Temperature:  0.7,
	}
	if file.Temperature != nil {
		session.Temperature = *file.Temperature
	}
	for _, rec := range file.History {
		ts, err := time.Parse(time.RFC3339, rec.Timestamp)
		if err != nil {
			ts = time.Now()
		}
		session.History = append(session.History, ChatMessage{
			Role:    rec.Role,
			Content: rec.Content,
			Time:    ts,
		})
	}
	return session, nil
}

// SaveSession writes a session to path, creating the directory if needed.
func SaveSession(path string, s *Session) error {
	data, err := EncodeSession(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSession reads a session from path.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeSession(data)
}

// DefaultSessionDir is where bare session filenames are saved and loaded.
func DefaultSessionDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base, err = homedir.Dir()
		if err != nil {
			base = "."
		}
	}
	return filepath.Join(base, "matollama", "sessions")
}

// ResolveSessionPath expands a user-supplied session filename: a bare name
// lands in the default session directory, anything with a directory part is
// used as-is after ~ expansion.
func ResolveSessionPath(name string) string {
	if expanded, err := homedir.Expand(name); err == nil {
		name = expanded
	}
	if filepath.Dir(name) == "." {
		return filepath.Join(DefaultSessionDir(), name)
	}
	return name
}

// GenerateSessionFilename returns a timestamped default session filename.
func GenerateSessionFilename() string {
	return fmt.Sprintf("session_%s.json", time.Now().Format("20060102_150405"))
}
