// Package session owns the opaque token that correlates one client
// installation with its cart rows. The token is not an authentication
// credential.
package session

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TokenFileName is the well-known name of the durable token file.
const TokenFileName = "cart_session_id"

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Provider yields the session token for the current installation.
type Provider interface {
	SessionID() string
}

// NewToken builds a fresh session token from the current timestamp and a
// random suffix. Uniqueness is best-effort, not cryptographic.
func NewToken() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}

// FileProvider persists the token to a file under dir on first use and
// returns the stored value unchanged ever after.
type FileProvider struct {
	path  string
	token string
}

// NewFileProvider loads or creates the token file. Storage unavailability is
// a fatal precondition, so a failed first write surfaces as an error here.
func NewFileProvider(dir string) (*FileProvider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}

	path := filepath.Join(dir, TokenFileName)
	data, err := os.ReadFile(path)
	if err == nil && len(strings.TrimSpace(string(data))) > 0 {
		return &FileProvider{path: path, token: strings.TrimSpace(string(data))}, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	token := NewToken()
	if err := os.WriteFile(path, []byte(token), 0o644); err != nil {
		return nil, fmt.Errorf("failed to persist session token: %w", err)
	}
	return &FileProvider{path: path, token: token}, nil
}

func (p *FileProvider) SessionID() string {
	return p.token
}

// Static is a fixed-token provider for tests.
type Static string

func (s Static) SessionID() string {
	return string(s)
}
