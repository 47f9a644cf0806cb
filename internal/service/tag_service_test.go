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

func newTagService(env *testEnv) TagService {
	return NewTagService(env.tagRepo, env.noteRepo, zap.NewNop(), &ServiceConfig{})
}

func TestTagService_AddNormalizesAndDedupes(t *testing.T) {
	env := newTestEnv(t)
	tags := newTagService(env)
	ctx := context.Background()

	note, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "trip"})
	require.NoError(t, err)

	tag, err := tags.Add(ctx, env.uid, note.ID, &dto.TagAddRequest{Name: "  Travel "})
	require.NoError(t, err)
	assert.Equal(t, "travel", tag.Name)

	// same name in different case resolves to the existing tag
	again, err := tags.Add(ctx, env.uid, note.ID, &dto.TagAddRequest{Name: "TRAVEL"})
	require.NoError(t, err)
	assert.Equal(t, tag.ID, again.ID)

	listed, err := tags.List(ctx, env.uid, note.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = tags.Add(ctx, env.uid, note.ID, &dto.TagAddRequest{Name: "   "})
	assert.ErrorIs(t, err, code.ErrorInvalidParams)
}

func TestTagService_OwnershipAndLookup(t *testing.T) {
	env := newTestEnv(t)
	tags := newTagService(env)
	ctx := context.Background()

	first, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "first"})
	require.NoError(t, err)
	second, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "second"})
	require.NoError(t, err)

	_, err = tags.Add(ctx, env.uid, first.ID, &dto.TagAddRequest{Name: "work"})
	require.NoError(t, err)
	_, err = tags.Add(ctx, env.uid, second.ID, &dto.TagAddRequest{Name: "work"})
	require.NoError(t, err)
	_, err = tags.Add(ctx, env.uid, second.ID, &dto.TagAddRequest{Name: "idea"})
	require.NoError(t, err)

	// a stranger cannot tag someone else's note
	_, err = tags.Add(ctx, env.uid+1000, first.ID, &dto.TagAddRequest{Name: "spy"})
	assert.ErrorIs(t, err, code.ErrorNoteNotExist)

	ids, err := tags.NoteIDs(ctx, env.uid, "Work")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{first.ID, second.ID}, ids)

	popular, err := tags.Popular(ctx, env.uid)
	require.NoError(t, err)
	require.NotEmpty(t, popular)
	assert.Equal(t, "work", popular[0].Name)
	assert.Equal(t, int64(2), popular[0].Count)

	require.NoError(t, tags.Remove(ctx, env.uid, first.ID, "WORK"))
	ids, err = tags.NoteIDs(ctx, env.uid, "work")
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID}, ids)
}
