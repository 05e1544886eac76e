package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s := NewStore()
	s.BeginRecording(PolicyRepeat)
	s.Append(sig, "a")
	s.Append(sig, "b")
	s.BeginRecording(PolicyEmpty)
	s.Append("bill?q=healthcare", "c")
	s.EndRecording()

	// Consume something so the reload has a cursor to reset.
	s.Lookup(sig)
	require.NoError(t, s.Save(path))

	loaded := NewStore()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, s.Signatures(), loaded.Signatures())

	for _, k := range s.Signatures() {
		want, _ := s.Entry(k)
		got, _ := loaded.Entry(k)
		assert.Equal(t, want.Policy, got.Policy)
		assert.Equal(t, want.Responses, got.Responses)
		assert.Equal(t, 0, got.Cursor())
	}
	assert.Equal(t, "a", loaded.Lookup(sig))
}

func TestSaveFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s := NewStore()
	s.BeginRecording(PolicyEmpty)
	s.Append(sig, `{"objects": []}`)
	require.NoError(t, s.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "data")
	assert.Contains(t, doc, "metadata")

	var data map[string][]string
	require.NoError(t, json.Unmarshal(doc["data"], &data))
	assert.Equal(t, []string{"empty", `{"objects": []}`}, data[sig])

	matches, _ := filepath.Glob(path + ".tmp.*")
	assert.Empty(t, matches)
}

func TestLoadReadsExistingRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	content := `{"data": {"k": ["repeat", "first", "second"]}, "metadata": ""}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s := NewStore()
	require.NoError(t, s.Load(path))
	assert.Equal(t, "first", s.Lookup("k"))
	assert.Equal(t, "second", s.Lookup("k"))
	assert.Equal(t, "second", s.Lookup("k"))
}

func TestLoadMissingFileKeepsState(t *testing.T) {
	s := NewStore()
	recordN(s, PolicyRepeat, 2)

	err := s.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "response-1", s.Lookup(sig))
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"not json":       `{"data":`,
		"no data":        `{"metadata": ""}`,
		"no policy tag":  `{"data": {"k": []}}`,
		"unknown policy": `{"data": {"k": ["cycle", "x"]}}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cache.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			s := NewStore()
			recordN(s, PolicyRepeat, 1)

			var le *LoadError
			require.ErrorAs(t, s.Load(path), &le)
			assert.Equal(t, path, le.Path)
			assert.Equal(t, 1, s.Len())
		})
	}
}
