package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const sessionIDBytes = 16

// GenerateSessionID returns a random hex identifier for a game session.
func GenerateSessionID() (string, error) {
	bytes := make([]byte, sessionIDBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// IsSessionID reports whether s looks like a value from GenerateSessionID.
func IsSessionID(s string) bool {
	if len(s) != sessionIDBytes*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
