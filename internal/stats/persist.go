package stats

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ammadhh/gemini-test-chips/internal/fileutil"
)

// LoadFile reads persisted session totals from path. A missing file
// yields an empty session so first runs need no setup.
func LoadFile(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading stats file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decoding stats file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Session{}, fmt.Errorf("stats file inconsistent: %w", err)
	}
	return s, nil
}

// SaveFile writes session totals to path atomically, so a crash
// mid-save never corrupts the stats file.
func SaveFile(path string, s Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}
