package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
)

// LoadError is returned by Load when a cache file cannot be used. The store
// keeps its previous contents.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cache file %q could not be loaded: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// fileFormat is the on-disk layout. Each data value is the policy tag followed
// by the recorded responses.
type fileFormat struct {
	Data     map[string][]string `json:"data"`
	Metadata string              `json:"metadata"`
}

// Save implements Persister
func (s *Store) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ff := fileFormat{Data: make(map[string][]string, len(s.entries))}
	for sig, e := range s.entries {
		row := make([]string, 0, len(e.Responses)+1)
		row = append(row, string(e.Policy))
		row = append(row, e.Responses...)
		ff.Data[sig] = row
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&ff); err != nil {
		return err
	}
	data := buf.Bytes()

	// Write to temporary file first, then rename
	tmpPath := path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Load implements Persister. It replaces every entry and resets all cursors.
// Recording state is not stored in the file and is left as is.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return &LoadError{Path: path, Err: err}
	}
	if ff.Data == nil {
		return &LoadError{Path: path, Err: errors.New(`missing "data" object`)}
	}

	entries := make(map[string]*Entry, len(ff.Data))
	for sig, row := range ff.Data {
		if len(row) == 0 {
			return &LoadError{Path: path, Err: fmt.Errorf("entry %q has no policy tag", sig)}
		}
		policy := Policy(row[0])
		if policy != PolicyRepeat && policy != PolicyEmpty {
			return &LoadError{Path: path, Err: fmt.Errorf("entry %q has unknown policy %q", sig, row[0])}
		}
		entries[sig] = &Entry{
			Policy:    policy,
			Responses: append([]string(nil), row[1:]...),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	return nil
}
