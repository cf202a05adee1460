package flatfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidewater-labs/staffdir/internal/roster/domain"
	"github.com/tidewater-labs/staffdir/internal/roster/store"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "employees.txt")
	s, err := NewStore(path)
	require.NoError(t, err)
	return s, path
}

func seed(t *testing.T, s *Store, employees ...domain.Employee) {
	t.Helper()
	require.NoError(t, s.SaveAll(context.Background(), employees))
}

func TestNewStoreCreatesMissingFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "data", "employees.txt")
	s, err := NewStore(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	employees, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, employees)
}

func TestListRecreatesDeletedFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, path := newTestStore(t)
	require.NoError(t, os.Remove(path))

	employees, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, employees)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestListPadsAndTrimsFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, path := newTestStore(t)
	raw := "123456,Alice Johnson\n\n654321, Bob Stone ,Engineering,Developer,ignored\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	employees, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Employee{
		{ID: "123456", Name: "Alice Johnson"},
		{ID: "654321", Name: "Bob Stone", Department: "Engineering", Role: "Developer"},
	}, employees)
}

func TestSaveRoundTripIsNoOp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, path := newTestStore(t)
	seed(t, s,
		domain.Employee{ID: "123456", Name: "Alice Johnson", Department: "IT", Role: "Developer"},
		domain.Employee{ID: "654321", Name: "Bob Stone", Department: "Sales", Role: "Manager"},
	)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	employees, err := s.List(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveAll(ctx, employees))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestAdd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, _ := newTestStore(t)
	alice := domain.Employee{ID: "123456", Name: "Alice Johnson", Department: "IT", Role: "Developer"}

	require.NoError(t, s.Add(ctx, alice))

	employees, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Employee{alice}, employees)

	t.Run("duplicate id fails", func(t *testing.T) {
		err := s.Add(ctx, domain.Employee{ID: "123456", Name: "Impostor", Department: "HR", Role: "Clerk"})
		require.ErrorIs(t, err, store.ErrDuplicateID)

		employees, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, employees, 1)
		require.Equal(t, alice, employees[0])
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	alice := domain.Employee{ID: "111111", Name: "Alice Johnson", Department: "IT", Role: "Developer"}
	bob := domain.Employee{ID: "222222", Name: "Bob Stone", Department: "Sales", Role: "Manager"}
	carol := domain.Employee{ID: "333333", Name: "Carol Reyes", Department: "HR", Role: "Recruiter"}

	t.Run("missing id fails", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)
		seed(t, s, alice)

		err := s.Update(ctx, "999999", bob)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("non-id change keeps position", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)
		seed(t, s, alice, bob, carol)

		updated := bob
		updated.Role = "Director"
		require.NoError(t, s.Update(ctx, bob.ID, updated))

		employees, err := s.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []domain.Employee{alice, updated, carol}, employees)
	})

	t.Run("id change to free value keeps position", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)
		seed(t, s, alice, bob, carol)

		moved := bob
		moved.ID = "444444"
		require.NoError(t, s.Update(ctx, bob.ID, moved))

		employees, err := s.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []domain.Employee{alice, moved, carol}, employees)
	})

	t.Run("id collision leaves store unchanged", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)
		seed(t, s, alice, bob, carol)

		colliding := bob
		colliding.ID = carol.ID
		err := s.Update(ctx, bob.ID, colliding)
		require.ErrorIs(t, err, store.ErrDuplicateID)

		employees, err := s.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []domain.Employee{alice, bob, carol}, employees)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, _ := newTestStore(t)
	alice := domain.Employee{ID: "111111", Name: "Alice Johnson", Department: "IT", Role: "Developer"}
	bob := domain.Employee{ID: "222222", Name: "Bob Stone", Department: "Sales", Role: "Manager"}
	seed(t, s, alice, bob)

	require.ErrorIs(t, s.Delete(ctx, "999999"), store.ErrNotFound)

	require.NoError(t, s.Delete(ctx, alice.ID))

	employees, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Employee{bob}, employees)
}

func TestSaveAllCleansUpTempFiles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, path := newTestStore(t)
	dir := filepath.Dir(path)

	seed(t, s, domain.Employee{ID: "123456", Name: "Alice Johnson", Department: "IT", Role: "Developer"})
	require.NoError(t, s.Delete(ctx, "123456"))

	t.Run("no temp files after successful saves", func(t *testing.T) {
		leftovers, err := filepath.Glob(filepath.Join(dir, "roster-*.tmp"))
		require.NoError(t, err)
		require.Empty(t, leftovers)
	})

	t.Run("failed rename removes temp file", func(t *testing.T) {
		// A directory at the target path makes the rename step fail.
		require.NoError(t, os.Remove(path))
		require.NoError(t, os.Mkdir(path, 0o755))

		err := s.SaveAll(ctx, []domain.Employee{{ID: "123456", Name: "Alice Johnson", Department: "IT", Role: "Developer"}})
		require.Error(t, err)

		leftovers, err := filepath.Glob(filepath.Join(dir, "roster-*.tmp"))
		require.NoError(t, err)
		require.Empty(t, leftovers)
	})
}
