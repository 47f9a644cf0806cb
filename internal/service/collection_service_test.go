package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/pkg/code"
)

func newCollectionService(env *testEnv) CollectionService {
	return NewCollectionService(env.collRepo, env.collNoteRepo, env.noteRepo, zap.NewNop())
}

func TestCollectionService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	colls := newCollectionService(env)
	ctx := context.Background()

	created, err := colls.Create(ctx, env.uid, &dto.CollectionCreateRequest{
		Name:        "reading list",
		Description: "longer articles",
	})
	require.NoError(t, err)
	assert.Equal(t, "reading list", created.Name)
	assert.Equal(t, int64(0), created.NoteCount)

	// patch only the name, the description survives
	patched, err := colls.Update(ctx, env.uid, created.ID, &dto.CollectionUpdateRequest{
		Name: strPtr("evening reading"),
	})
	require.NoError(t, err)
	assert.Equal(t, "evening reading", patched.Name)
	assert.Equal(t, "longer articles", patched.Description)

	list, err := colls.List(ctx, env.uid)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, colls.Delete(ctx, env.uid, created.ID))
	_, err = colls.Get(ctx, env.uid, created.ID)
	assert.ErrorIs(t, err, code.ErrorCollectionNotExist)
}

func TestCollectionService_OwnershipAndMembership(t *testing.T) {
	env := newTestEnv(t)
	colls := newCollectionService(env)
	ctx := context.Background()

	coll, err := colls.Create(ctx, env.uid, &dto.CollectionCreateRequest{Name: "work"})
	require.NoError(t, err)

	note, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "standup notes"})
	require.NoError(t, err)

	// a stranger sees neither the collection nor its members
	stranger := env.uid + 1000
	_, err = colls.Get(ctx, stranger, coll.ID)
	assert.ErrorIs(t, err, code.ErrorCollectionNotExist)
	err = colls.AddNote(ctx, stranger, coll.ID, note.ID)
	assert.ErrorIs(t, err, code.ErrorCollectionNotExist)

	require.NoError(t, colls.AddNote(ctx, env.uid, coll.ID, note.ID))
	// duplicate membership is a no-op
	require.NoError(t, colls.AddNote(ctx, env.uid, coll.ID, note.ID))

	got, err := colls.Get(ctx, env.uid, coll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.NoteCount)

	notes, err := colls.Notes(ctx, env.uid, coll.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "standup notes", notes[0].Title)

	require.NoError(t, colls.RemoveNote(ctx, env.uid, coll.ID, note.ID))
	got, err = colls.Get(ctx, env.uid, coll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.NoteCount)
}

func TestCollectionService_SkipsDeletedNotes(t *testing.T) {
	env := newTestEnv(t)
	colls := newCollectionService(env)
	ctx := context.Background()

	coll, err := colls.Create(ctx, env.uid, &dto.CollectionCreateRequest{Name: "mixed"})
	require.NoError(t, err)

	kept, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "kept"})
	require.NoError(t, err)
	gone, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "gone"})
	require.NoError(t, err)

	require.NoError(t, colls.AddNote(ctx, env.uid, coll.ID, kept.ID))
	require.NoError(t, colls.AddNote(ctx, env.uid, coll.ID, gone.ID))

	require.NoError(t, env.notes.Delete(ctx, env.uid, gone.ID))
	env.settle(t)

	notes, err := colls.Notes(ctx, env.uid, coll.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "kept", notes[0].Title)
}
