package kvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"maptrack/internal/adapter/storage"
)

func TestSetGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "workouts", []byte(`[{"id":"1"}]`)))

	got, err := s.Get(ctx, "workouts")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"1"}]`, string(got))
}

func TestGetMissingKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "workouts")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "workouts", []byte(`[]`)))

	reopened, err := Open(path)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "workouts")
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(got))
}

func TestDeleteRemovesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "workouts", []byte(`[]`)))
	require.NoError(t, s.Delete(ctx, "workouts"))
	require.NoError(t, s.Delete(ctx, "workouts"))

	_, err = s.Get(ctx, "workouts")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestSetRejectsInvalidJSON(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	err = s.Set(context.Background(), "workouts", []byte("not json"))
	require.ErrorIs(t, err, storage.ErrWriteFailed)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := Open(path)
	require.ErrorIs(t, err, storage.ErrInternal)
}
