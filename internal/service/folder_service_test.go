package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-folder-service/internal/domain"
	"github.com/haierkeys/fast-note-folder-service/pkg/code"
	"github.com/haierkeys/fast-note-folder-service/pkg/idcodec"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStorage = errors.New("storage unavailable")

// memStore backs both fake repositories
type memStore struct {
	mu      sync.Mutex
	folders map[uuid.UUID]*domain.Folder
	notes   map[uuid.UUID]*domain.Note
	order   []uuid.UUID

	failFolderGet    bool
	failFolderSearch bool
	failFolderList   bool
	failNoteSearch   bool
	failNoteList     bool
	failUpdate       bool

	noteSearches   int
	folderSearches int
	folderLists    int

	// listGate, when set, holds ListByOwner until closed or the caller's ctx ends
	listGate    chan struct{}
	listWaiting int
}

func newMemStore() *memStore {
	return &memStore{
		folders: make(map[uuid.UUID]*domain.Folder),
		notes:   make(map[uuid.UUID]*domain.Note),
	}
}

type fakeFolderRepo struct {
	domain.FolderRepository
	s *memStore
}

type fakeNoteRepo struct {
	domain.NoteRepository
	s *memStore
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failFolderGet {
		return nil, errStorage
	}
	f, ok := r.s.folders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) ListByOwner(ctx context.Context, uid int64) ([]*domain.Folder, error) {
	if gate := r.s.listGate; gate != nil {
		r.s.mu.Lock()
		r.s.listWaiting++
		r.s.mu.Unlock()
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.folderLists++
	if r.s.failFolderList {
		return nil, errStorage
	}
	var out []*domain.Folder
	for _, id := range r.s.order {
		if f, ok := r.s.folders[id]; ok && f.OwnerID == uid {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) SearchByOwner(ctx context.Context, uid int64, keyword string) ([]*domain.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.folderSearches++
	if r.s.failFolderSearch {
		return nil, errStorage
	}
	var out []*domain.Folder
	for _, id := range r.s.order {
		if f, ok := r.s.folders[id]; ok && f.OwnerID == uid && strings.Contains(f.Name, keyword) {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) UpdateName(ctx context.Context, id uuid.UUID, name string, uid int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failUpdate {
		return errStorage
	}
	r.s.folders[id].Name = name
	return nil
}

func (r *fakeNoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNoteRepo) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]*domain.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failNoteList {
		return nil, errStorage
	}
	var out []*domain.Note
	for _, id := range r.s.order {
		if n, ok := r.s.notes[id]; ok && n.FolderID != nil && *n.FolderID == folderID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) SearchByOwner(ctx context.Context, uid int64, keyword string) ([]*domain.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.noteSearches++
	if r.s.failNoteSearch {
		return nil, errStorage
	}
	var out []*domain.Note
	for _, id := range r.s.order {
		if n, ok := r.s.notes[id]; ok && n.OwnerID == uid && strings.Contains(n.Content, keyword) {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) UpdateFolder(ctx context.Context, id uuid.UUID, folderID uuid.UUID, uid int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failUpdate {
		return errStorage
	}
	fid := folderID
	r.s.notes[id].FolderID = &fid
	return nil
}

func (s *memStore) addFolder(owner int64, name string, created time.Time) *domain.Folder {
	f := &domain.Folder{ID: uuid.New(), Name: name, OwnerID: owner, CreatedAt: created}
	s.folders[f.ID] = f
	s.order = append(s.order, f.ID)
	return f
}

func (s *memStore) addNote(owner int64, folder *domain.Folder, title, content string, created time.Time, changed *time.Time) *domain.Note {
	n := &domain.Note{ID: uuid.New(), Title: title, OwnerID: owner, Content: content, CreatedAt: created, LastChangeAt: changed}
	if folder != nil {
		fid := folder.ID
		n.FolderID = &fid
	}
	s.notes[n.ID] = n
	s.order = append(s.order, n.ID)
	return n
}

func newTestService(t *testing.T, store *memStore, cfg *ServiceConfig) (FolderService, idcodec.Codec) {
	t.Helper()
	codec, err := idcodec.New(idcodec.Config{})
	require.NoError(t, err)
	svc := NewFolderService(&fakeFolderRepo{s: store}, &fakeNoteRepo{s: store}, codec, nil, cfg)
	return svc, codec
}

func assertCode(t *testing.T, want *code.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, want)
}

var (
	userA = int64(1)
	userB = int64(2)
	t0    = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
)

func TestListNotes(t *testing.T) {
	store := newMemStore()
	f1 := store.addFolder(userA, "Work", t0)
	changed := t0.Add(time.Hour)
	n1 := store.addNote(userA, f1, "Plan", "---\ntags: [go, api]\n---\nbody", t0, &changed)
	n2 := store.addNote(userA, f1, "Draft", "###### tags: `x`", t0.Add(time.Minute), nil)
	store.addNote(userA, nil, "Loose", "", t0, nil)

	svc, codec := newTestService(t, store, nil)

	notes, err := svc.ListNotes(context.Background(), userA, codec.Encode(f1.ID))
	require.NoError(t, err)
	require.Len(t, notes, 2)

	assert.Equal(t, codec.Encode(n1.ID), notes[0].ID)
	assert.Equal(t, "Plan", notes[0].Text)
	assert.Equal(t, changed.UnixMilli(), notes[0].Time)
	assert.Equal(t, []string{"go", "api"}, notes[0].Tag)

	assert.Equal(t, codec.Encode(n2.ID), notes[1].ID)
	assert.Equal(t, n2.CreatedAt.UnixMilli(), notes[1].Time)
	assert.Equal(t, []string{"x"}, notes[1].Tag)
}

func TestListNotes_EmptyFolderIsSuccess(t *testing.T) {
	store := newMemStore()
	f := store.addFolder(userA, "Empty", t0)
	svc, codec := newTestService(t, store, nil)

	notes, err := svc.ListNotes(context.Background(), userA, codec.Encode(f.ID))
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestListNotes_Outcomes(t *testing.T) {
	store := newMemStore()
	f := store.addFolder(userA, "Private", t0)
	store.addNote(userA, f, "secret", "secret content", t0, nil)
	svc, codec := newTestService(t, store, nil)
	ctx := context.Background()

	notes, err := svc.ListNotes(ctx, userB, codec.Encode(f.ID))
	assertCode(t, code.ErrorFolderForbidden, err)
	assert.Nil(t, notes)

	_, err = svc.ListNotes(ctx, userA, codec.Encode(uuid.New()))
	assertCode(t, code.ErrorFolderNotFound, err)

	_, err = svc.ListNotes(ctx, 0, codec.Encode(f.ID))
	assertCode(t, code.ErrorNotUserAuthToken, err)

	_, err = svc.ListNotes(ctx, userA, "not*an*id")
	assertCode(t, code.ErrorServerInternal, err)

	store.failNoteList = true
	_, err = svc.ListNotes(ctx, userA, codec.Encode(f.ID))
	assertCode(t, code.ErrorDBQuery, err)
	assert.Empty(t, err.(*code.Code).Details())

	store.failFolderGet = true
	_, err = svc.ListNotes(ctx, userA, codec.Encode(f.ID))
	assertCode(t, code.ErrorDBQuery, err)
}

func TestListNotes_OwnerNeverForbidden(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("owner lists, everyone else is forbidden", prop.ForAll(
		func(owner, caller int64) bool {
			store := newMemStore()
			f := store.addFolder(owner, "F", t0)
			store.addNote(owner, f, "n", "c", t0, nil)
			svc, codec := newTestService(t, store, nil)

			notes, err := svc.ListNotes(context.Background(), caller, codec.Encode(f.ID))
			if owner == caller {
				return err == nil && len(notes) == 1
			}
			return errors.Is(err, code.ErrorFolderForbidden) && notes == nil
		},
		gen.Int64Range(1, 4),
		gen.Int64Range(1, 4),
	))

	properties.TestingRun(t)
}

func TestRename(t *testing.T) {
	store := newMemStore()
	f := store.addFolder(userA, "Old", t0)
	svc, codec := newTestService(t, store, nil)
	ctx := context.Background()

	require.NoError(t, svc.Rename(ctx, userA, codec.Encode(f.ID), "New"))
	assert.Equal(t, "New", store.folders[f.ID].Name)

	// names pass through without validation
	require.NoError(t, svc.Rename(ctx, userA, codec.Encode(f.ID), ""))
	assert.Equal(t, "", store.folders[f.ID].Name)

	require.NoError(t, svc.Rename(ctx, userA, codec.Encode(f.ID), "Kept"))
	err := svc.Rename(ctx, userB, codec.Encode(f.ID), "Hijacked")
	assertCode(t, code.ErrorFolderForbidden, err)
	assert.Equal(t, "Kept", store.folders[f.ID].Name)

	err = svc.Rename(ctx, userA, codec.Encode(uuid.New()), "x")
	assertCode(t, code.ErrorFolderNotFound, err)

	store.failUpdate = true
	err = svc.Rename(ctx, userA, codec.Encode(f.ID), "y")
	assertCode(t, code.ErrorDBQuery, err)
}

func TestMoveNote(t *testing.T) {
	store := newMemStore()
	f1 := store.addFolder(userA, "F1", t0)
	f2 := store.addFolder(userB, "F2", t0)
	f3 := store.addFolder(userA, "F3", t0)
	n1 := store.addNote(userA, f1, "N1", "", t0, nil)
	nB := store.addNote(userB, f2, "NB", "", t0, nil)
	svc, codec := newTestService(t, store, nil)
	ctx := context.Background()

	// target folder owned by someone else
	err := svc.MoveNote(ctx, userA, codec.Encode(n1.ID), codec.Encode(f2.ID))
	assertCode(t, code.ErrorFolderForbidden, err)
	assert.Equal(t, f1.ID, *store.notes[n1.ID].FolderID)

	// note owned by someone else
	err = svc.MoveNote(ctx, userA, codec.Encode(nB.ID), codec.Encode(f3.ID))
	assertCode(t, code.ErrorNoteForbidden, err)
	assert.Equal(t, f2.ID, *store.notes[nB.ID].FolderID)

	// folder outcome wins when both fail
	err = svc.MoveNote(ctx, userA, codec.Encode(uuid.New()), codec.Encode(uuid.New()))
	assertCode(t, code.ErrorFolderNotFound, err)

	err = svc.MoveNote(ctx, userA, codec.Encode(uuid.New()), codec.Encode(f3.ID))
	assertCode(t, code.ErrorNoteNotFound, err)

	// idempotent
	require.NoError(t, svc.MoveNote(ctx, userA, codec.Encode(n1.ID), codec.Encode(f3.ID)))
	require.NoError(t, svc.MoveNote(ctx, userA, codec.Encode(n1.ID), codec.Encode(f3.ID)))
	assert.Equal(t, f3.ID, *store.notes[n1.ID].FolderID)

	err = svc.MoveNote(ctx, 0, codec.Encode(n1.ID), codec.Encode(f3.ID))
	assertCode(t, code.ErrorNotUserAuthToken, err)
}

func TestSearchKeyword_Isolation(t *testing.T) {
	store := newMemStore()
	fa := store.addFolder(userA, "shared title", t0)
	store.addFolder(userB, "shared title", t0)
	na := store.addNote(userA, fa, "A", "shared words", t0, nil)
	store.addNote(userB, nil, "B", "shared words", t0, nil)
	svc, codec := newTestService(t, store, nil)

	for _, kw := range []string{"", "shared"} {
		res, err := svc.SearchKeyword(context.Background(), userA, kw)
		require.NoError(t, err)
		require.Len(t, res.Notes, 1, "keyword %q", kw)
		require.Len(t, res.Folders, 1, "keyword %q", kw)
		assert.Equal(t, codec.Encode(na.ID), res.Notes[0].ID)
		assert.Equal(t, codec.Encode(fa.ID), res.Folders[0].ID)
		assert.Equal(t, fa.CreatedAt.UnixMilli(), res.Folders[0].Time)
	}

	res, err := svc.SearchKeyword(context.Background(), userA, "nothing")
	require.NoError(t, err)
	assert.Empty(t, res.Notes)
	assert.Empty(t, res.Folders)
}

func TestSearchKeyword_Failures(t *testing.T) {
	ctx := context.Background()

	store := newMemStore()
	store.addNote(userA, nil, "A", "hit", t0, nil)
	store.failFolderSearch = true
	svc, _ := newTestService(t, store, nil)

	res, err := svc.SearchKeyword(ctx, userA, "hit")
	assertCode(t, code.ErrorDBQuery, err)
	assert.Nil(t, res)
	assert.Equal(t, 1, store.noteSearches)

	store = newMemStore()
	store.failNoteSearch = true
	svc, _ = newTestService(t, store, nil)

	_, err = svc.SearchKeyword(ctx, userA, "hit")
	assertCode(t, code.ErrorDBQuery, err)
	assert.Equal(t, 0, store.folderSearches)

	_, err = svc.SearchKeyword(ctx, 0, "hit")
	assertCode(t, code.ErrorNotUserAuthToken, err)
}

func TestSearchKeyword_EmptyKeywordMatchesAllOwned(t *testing.T) {
	store := newMemStore()
	f := store.addFolder(userA, "Mine", t0)
	store.addNote(userA, f, "One", "anything", t0, nil)
	store.addFolder(userB, "Theirs", t0)
	svc, _ := newTestService(t, store, nil)

	res, err := svc.SearchKeyword(context.Background(), userA, "")
	require.NoError(t, err)
	assert.Len(t, res.Notes, 1)
	require.Len(t, res.Folders, 1)
	assert.Equal(t, "Mine", res.Folders[0].Text)
}

func TestListAllFolders(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, codec := newTestService(t, store, nil)

	_, err := svc.ListAllFolders(ctx, userA)
	assertCode(t, code.ErrorFolderNotFound, err)

	f := store.addFolder(userA, "Only", t0)
	store.addFolder(userB, "Other", t0)

	folders, err := svc.ListAllFolders(ctx, userA)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, codec.Encode(f.ID), folders[0].ID)
	assert.Equal(t, "Only", folders[0].Text)
	assert.Equal(t, t0.UnixMilli(), folders[0].Time)

	store.failFolderList = true
	_, err = svc.ListAllFolders(ctx, userA)
	assertCode(t, code.ErrorDBQuery, err)

	_, err = svc.ListAllFolders(ctx, 0)
	assertCode(t, code.ErrorNotUserAuthToken, err)
}

func TestListAllFolders_EmptyListSuccess(t *testing.T) {
	svc, _ := newTestService(t, newMemStore(), &ServiceConfig{EmptyFolderListSuccess: true})

	folders, err := svc.ListAllFolders(context.Background(), userA)
	require.NoError(t, err)
	assert.NotNil(t, folders)
	assert.Empty(t, folders)
}

func TestListAllFolders_CancelledCallerDoesNotFailOthers(t *testing.T) {
	store := newMemStore()
	store.addFolder(userA, "Only", t0)
	gate := make(chan struct{})
	store.listGate = gate
	svc, _ := newTestService(t, store, nil)

	type result struct {
		count int
		err   error
	}
	list := func(ctx context.Context, out chan<- result) {
		folders, err := svc.ListAllFolders(ctx, userA)
		out <- result{count: len(folders), err: err}
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	resA := make(chan result, 1)
	resB := make(chan result, 1)
	go list(ctxA, resA)
	go list(context.Background(), resB)

	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return store.listWaiting == 2
	}, time.Second, 5*time.Millisecond)

	cancelA()
	a := <-resA
	assertCode(t, code.ErrorDBQuery, a.err)

	close(gate)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, 1, b.count)
	// only B reached the store; A gave up on its own ctx
	assert.Equal(t, 1, store.folderLists)
}

func TestListAllFolders_SeesPriorRename(t *testing.T) {
	store := newMemStore()
	f := store.addFolder(userA, "Before", t0)
	svc, codec := newTestService(t, store, nil)
	ctx := context.Background()

	require.NoError(t, svc.Rename(ctx, userA, codec.Encode(f.ID), "After"))

	folders, err := svc.ListAllFolders(ctx, userA)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "After", folders[0].Text)
}

func TestNonexistentKeyIsNotFound(t *testing.T) {
	store := newMemStore()
	owned := store.addFolder(userA, "F", t0)
	svc, codec := newTestService(t, store, nil)
	ctx := context.Background()
	missing := codec.Encode(uuid.New())

	_, err := svc.ListNotes(ctx, userA, missing)
	assertCode(t, code.ErrorFolderNotFound, err)

	assertCode(t, code.ErrorFolderNotFound, svc.Rename(ctx, userA, missing, "x"))
	assertCode(t, code.ErrorFolderNotFound, svc.MoveNote(ctx, userA, missing, missing))
	assertCode(t, code.ErrorNoteNotFound, svc.MoveNote(ctx, userA, missing, codec.Encode(owned.ID)))
}
