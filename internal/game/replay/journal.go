// Package replay records the server messages of a game so the client state can be rebuilt offline.
package replay

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const journalVersion = 1

// ErrNoJournal is returned when no journal is held for a game.
var ErrNoJournal = errors.New("no journal for game")

// Journal is the ordered list of encoded server messages of one game.
type Journal struct {
	GameID  int
	Entries [][]byte
	cursor  int
	mu      sync.RWMutex
}

// NewJournal creates an empty journal.
func NewJournal(gameID int) *Journal {
	return &Journal{GameID: gameID}
}

// Append stores a copy of one encoded message.
func (j *Journal) Append(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := make([]byte, len(data))
	copy(entry, data)
	j.Entries = append(j.Entries, entry)
}

// Len returns the number of recorded messages.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.Entries)
}

// Rewind moves playback back to the first message.
func (j *Journal) Rewind() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.cursor = 0
}

// Next returns the next message in playback order.
func (j *Journal) Next() ([]byte, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cursor >= len(j.Entries) {
		return nil, false
	}
	entry := j.Entries[j.cursor]
	j.cursor++
	return entry, true
}

// At returns the message at index i, or nil.
func (j *Journal) At(i int) []byte {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if i >= 0 && i < len(j.Entries) {
		return j.Entries[i]
	}
	return nil
}

// FileName is the name under which a game's journal is stored.
func FileName(gameID int) string {
	return fmt.Sprintf("game-%d.journal", gameID)
}

type journalHeader struct {
	GameID     int
	Timestamp  time.Time
	Version    int
	EntryCount int
}

// SaveToFile writes the journal gzip-compressed into directory and returns the file path.
func (j *Journal) SaveToFile(directory string) (string, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(directory, FileName(j.GameID))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := gob.NewEncoder(gzipWriter)

	header := journalHeader{
		GameID:     j.GameID,
		Timestamp:  time.Now(),
		Version:    journalVersion,
		EntryCount: len(j.Entries),
	}
	if err := encoder.Encode(&header); err != nil {
		return "", fmt.Errorf("failed to encode header: %w", err)
	}
	for i, entry := range j.Entries {
		if err := encoder.Encode(entry); err != nil {
			return "", fmt.Errorf("failed to encode entry %d: %w", i, err)
		}
	}
	if err := gzipWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to flush journal: %w", err)
	}
	return path, nil
}

// LoadFile reads a journal written by SaveToFile.
func LoadFile(path string) (*Journal, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)

	var header journalHeader
	if err := decoder.Decode(&header); err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}
	if header.Version != journalVersion {
		return nil, fmt.Errorf("unsupported journal version: %d", header.Version)
	}

	j := NewJournal(header.GameID)
	for i := 0; i < header.EntryCount; i++ {
		var entry []byte
		if err := decoder.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode entry %d: %w", i, err)
		}
		j.Entries = append(j.Entries, entry)
	}
	return j, nil
}
