package dao

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-folder-service/internal/domain"
	"github.com/haierkeys/fast-note-folder-service/pkg/writequeue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:         "sqlite",
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, nil)
	require.NoError(t, err)

	wq := writequeue.New(nil, nil)
	t.Cleanup(func() {
		_ = wq.Shutdown(context.Background())
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return New(db, context.Background(),
		WithConfig(&DatabaseConfig{AutoMigrate: true}),
		WithWriteQueueManager(wq),
	)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%go%", containsPattern("go"))
	assert.Equal(t, "%100!%%", containsPattern("100%"))
	assert.Equal(t, "%a!_b%", containsPattern("a_b"))
	assert.Equal(t, "%wow!!%", containsPattern("wow!"))
	assert.Equal(t, "%%", containsPattern(""))
}

func TestFolderRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	repo := NewFolderRepository(d)

	created, err := repo.Create(ctx, &domain.Folder{Name: "Work"}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, int64(1), created.OwnerID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)
	assert.Equal(t, int64(1), got.OwnerID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.UpdateName(ctx, created.ID, "", 1))
	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Name)
}

func TestFolderRepository_ListAndSearchByOwner(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	repo := NewFolderRepository(d)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	for i, f := range []*domain.Folder{
		{Name: "Recipes", OwnerID: 1, CreatedAt: base},
		{Name: "Work 100%", OwnerID: 1, CreatedAt: base.Add(time.Hour)},
		{Name: "Recipes of B", OwnerID: 2, CreatedAt: base.Add(2 * time.Hour)},
	} {
		_, err := repo.Create(ctx, f, f.OwnerID)
		require.NoError(t, err, "folder %d", i)
	}

	list, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Recipes", list[0].Name)
	assert.Equal(t, "Work 100%", list[1].Name)

	empty, err := repo.ListByOwner(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)

	found, err := repo.SearchByOwner(ctx, 1, "Recipe")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(1), found[0].OwnerID)

	// wildcards in the keyword are literal
	found, err = repo.SearchByOwner(ctx, 1, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Work 100%", found[0].Name)

	found, err = repo.SearchByOwner(ctx, 1, "_")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestNoteRepository_FolderAndSearch(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	folders := NewFolderRepository(d)
	notes := NewNoteRepository(d)

	f1, err := folders.Create(ctx, &domain.Folder{Name: "F1", OwnerID: 1}, 1)
	require.NoError(t, err)
	f2, err := folders.Create(ctx, &domain.Folder{Name: "F2", OwnerID: 1}, 1)
	require.NoError(t, err)

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
	changed := base.Add(48 * time.Hour)

	n1, err := notes.Create(ctx, &domain.Note{
		Title:        "Groceries",
		OwnerID:      1,
		FolderID:     &f1.ID,
		Content:      "buy milk",
		CreatedAt:    base,
		LastChangeAt: &changed,
	}, 1)
	require.NoError(t, err)
	_, err = notes.Create(ctx, &domain.Note{
		Title:     "Loose",
		OwnerID:   1,
		Content:   "milk and honey",
		CreatedAt: base.Add(time.Hour),
	}, 1)
	require.NoError(t, err)
	_, err = notes.Create(ctx, &domain.Note{
		Title:     "Other user",
		OwnerID:   2,
		Content:   "milk",
		CreatedAt: base.Add(2 * time.Hour),
	}, 2)
	require.NoError(t, err)

	got, err := notes.GetByID(ctx, n1.ID)
	require.NoError(t, err)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, f1.ID, *got.FolderID)
	require.NotNil(t, got.LastChangeAt)
	assert.Equal(t, changed.Unix(), got.LastChangeAt.Unix())

	_, err = notes.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inF1, err := notes.ListByFolder(ctx, f1.ID)
	require.NoError(t, err)
	require.Len(t, inF1, 1)
	assert.Equal(t, "Groceries", inF1[0].Title)

	hits, err := notes.SearchByOwner(ctx, 1, "milk")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, n := range hits {
		assert.Equal(t, int64(1), n.OwnerID)
	}

	// moving twice to the same folder leaves the same state
	require.NoError(t, notes.UpdateFolder(ctx, n1.ID, f2.ID, 1))
	require.NoError(t, notes.UpdateFolder(ctx, n1.ID, f2.ID, 1))

	got, err = notes.GetByID(ctx, n1.ID)
	require.NoError(t, err)
	assert.Equal(t, f2.ID, *got.FolderID)
	assert.Equal(t, changed.Unix(), got.LastChangeAt.Unix())

	inF1, err = notes.ListByFolder(ctx, f1.ID)
	require.NoError(t, err)
	assert.Empty(t, inF1)
}

func TestUseDialector(t *testing.T) {
	_, err := useDialector(DatabaseConfig{Type: "oracle"})
	assert.Error(t, err)

	_, err = useDialector(DatabaseConfig{Type: "sqlite"})
	assert.Error(t, err)

	for _, typ := range []string{"mysql", "postgres"} {
		d, err := useDialector(DatabaseConfig{Type: typ, Host: "127.0.0.1:3306", Name: "notes"})
		require.NoError(t, err)
		assert.Equal(t, typ, d.Name())
	}

	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Contains(t, sqliteDSN("storage/db.sqlite3"), "busy_timeout")
}

func TestDao_MigrateConcurrentFirstUse(t *testing.T) {
	d := newTestDao(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- d.migrate("Folder")
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.True(t, d.migrated("Folder"))
	assert.False(t, d.migrated("Note"))
	assert.True(t, d.Db.Migrator().HasTable("folder"))
}
