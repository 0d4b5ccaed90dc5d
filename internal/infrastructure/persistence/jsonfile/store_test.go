package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "studentsrecords.json"), nil)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	records := []student.Record{
		{Name: "Ada", RollNumber: 1, Grades: map[string]int{"Math": 95, "CS": 98}},
		{Name: "Bob", RollNumber: 2, Grades: map[string]int{}},
	}
	require.NoError(t, s.Save(ctx, records))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestSave_FileFormat(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Save(ctx, []student.Record{
		{Name: "Ada", RollNumber: 1, Grades: map[string]int{"Math": 95}},
	}))

	data, err := os.ReadFile(s.Location())
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Len(t, raw[0], 3)
	assert.Equal(t, "Ada", raw[0]["name"])
	assert.Equal(t, float64(1), raw[0]["roll_number"])
	assert.Equal(t, map[string]any{"Math": float64(95)}, raw[0]["grades"])
	assert.Contains(t, string(data), "\n    {\n        \"name\": \"Ada\"")
}

func TestSave_EmptyRosterWritesArray(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Save(ctx, nil))

	data, err := os.ReadFile(s.Location())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrSnapshotNotFound)
	assert.True(t, shared.IsNotFound(err))
}

func TestLoad_NotJSON(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Location(), []byte("not json"), 0o644))

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrSnapshotCorrupt)
	assert.NotErrorIs(t, err, shared.ErrSnapshotNotFound)
}

func TestLoad_WrongShapeIsCorrupt(t *testing.T) {
	s := newTestStore(t)
	for _, content := range []string{
		`{"name": "Ada"}`,
		`[{"name": "Ada", "roll_number": 1, "grades": {"Math": "A"}}]`,
		``,
	} {
		require.NoError(t, os.WriteFile(s.Location(), []byte(content), 0o644))
		_, err := s.Load(context.Background())
		assert.ErrorIs(t, err, shared.ErrSnapshotCorrupt, "content %q", content)
	}
}

func TestLoad_OutOfRangeMarksTrusted(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Location(),
		[]byte(`[{"name": "Eve", "roll_number": 5, "grades": {"Math": 250}}]`), 0o644))

	records, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 250, records[0].Grades["Math"])
}

func TestSave_UnwritablePath(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing-dir", "x.json"), nil)
	err := s.Save(context.Background(), nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrSnapshotNotFound)
}

func TestSave_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newTestStore(t)
	assert.ErrorIs(t, s.Save(ctx, nil), context.Canceled)
	_, statErr := os.Stat(s.Location())
	assert.True(t, os.IsNotExist(statErr))
}

func TestDigest(t *testing.T) {
	d := Digest([]byte("[]\n"))
	assert.Len(t, d, 64)
	assert.Equal(t, d, Digest([]byte("[]\n")))
	assert.NotEqual(t, d, Digest([]byte("[ ]\n")))
}

func TestLoad_FractionalMarkRejectsWholeFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Location(), []byte(`[
		{"name": "Ada", "roll_number": 1, "grades": {"Math": 90}},
		{"name": "Bob", "roll_number": 2, "grades": {"Math": 87.5}}
	]`), 0o644))

	records, err := s.Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrSnapshotCorrupt)
	assert.Nil(t, records)
}

func TestChanged_TracksOwnWrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	assert.Empty(t, s.Fingerprint())

	changed, err := s.Changed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, s.Save(ctx, []student.Record{{Name: "Ada", RollNumber: 1, Grades: map[string]int{"Math": 90}}}))
	data, err := os.ReadFile(s.Location())
	require.NoError(t, err)
	assert.Equal(t, Digest(data), s.Fingerprint())

	changed, err = s.Changed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestChanged_DetectsOutsideEdits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Save(ctx, nil))

	require.NoError(t, os.WriteFile(s.Location(), []byte("[]\n\n"), 0o644))
	changed, err := s.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = s.Load(ctx)
	require.NoError(t, err)
	changed, err = s.Changed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.Remove(s.Location()))
	changed, err = s.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestChanged_FileAppearedAfterMissingLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_, err := s.Load(ctx)
	require.ErrorIs(t, err, shared.ErrSnapshotNotFound)

	require.NoError(t, os.WriteFile(s.Location(), []byte("[]"), 0o644))
	changed, err := s.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestChanged_CorruptFileCountsAsRead(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Location(), []byte("not json"), 0o644))

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, shared.ErrSnapshotCorrupt)
	assert.Equal(t, Digest([]byte("not json")), s.Fingerprint())

	changed, err := s.Changed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
}
