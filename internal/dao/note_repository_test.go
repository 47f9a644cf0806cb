package dao

import (
	"context"
	"testing"
	"time"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := NewDBEngine(DatabaseConfig{
		Type:         "sqlite",
		Path:         ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	return New(db)
}

func TestNoteRepository_CreateAndGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	reminder := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	note, err := repo.Create(ctx, &domain.Note{
		UID:          1,
		Title:        "Groceries",
		Content:      "milk, eggs",
		Category:     domain.CategoryShopping,
		ReminderDate: &reminder,
		Images:       []string{"http://x/img1.png"},
	})
	require.NoError(t, err)
	assert.NotZero(t, note.ID)

	got, err := repo.GetByID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, domain.CategoryShopping, got.Category)
	require.NotNil(t, got.ReminderDate)
	assert.Equal(t, reminder.Unix(), got.ReminderDate.Unix())
	assert.Equal(t, []string{"http://x/img1.png"}, got.Images)

	// Other users never see it.
	_, err = repo.GetByID(ctx, note.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteRepository_UpdateClearsReminder(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	reminder := time.Now().Add(time.Hour)
	note, err := repo.Create(ctx, &domain.Note{
		UID:          1,
		Title:        "a",
		Category:     domain.CategoryPersonal,
		ReminderDate: &reminder,
	})
	require.NoError(t, err)

	note.Title = "b"
	note.ReminderDate = nil
	updated, err := repo.Update(ctx, note)
	require.NoError(t, err)
	assert.Equal(t, "b", updated.Title)
	assert.Nil(t, updated.ReminderDate)
}

func TestNoteRepository_ListByUIDOrder(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, &domain.Note{
			UID:      7,
			Title:    title,
			Category: domain.CategoryPersonal,
		})
		require.NoError(t, err)
	}

	notes, err := repo.ListByUID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	// Newest first.
	assert.Equal(t, "third", notes[0].Title)
	assert.Equal(t, "first", notes[2].Title)
}

func TestNoteRepository_ShareUnshare(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{
		UID:      1,
		Title:    "to share",
		Category: domain.CategoryPersonal,
	})
	require.NoError(t, err)

	sharedAt := time.Now()
	require.NoError(t, repo.Share(ctx, note.ID, 1, "share-xyz", "alice", "http://x/a.png", sharedAt))

	got, err := repo.GetByShareID(ctx, "share-xyz")
	require.NoError(t, err)
	assert.True(t, got.IsPublic)
	assert.Equal(t, "alice", got.AuthorName)
	require.NotNil(t, got.SharedAt)

	require.NoError(t, repo.Unshare(ctx, note.ID, 1))

	_, err = repo.GetByShareID(ctx, "share-xyz")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err = repo.GetByID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.False(t, got.IsPublic)
	assert.Empty(t, got.ShareID)
	assert.Empty(t, got.AuthorName)
	assert.Nil(t, got.SharedAt)
}

func TestNoteRepository_ListPublic(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	for i, title := range []string{"go notes", "rust notes", "private"} {
		note, err := repo.Create(ctx, &domain.Note{
			UID:      1,
			Title:    title,
			Category: domain.CategoryPersonal,
		})
		require.NoError(t, err)
		if title != "private" {
			sharedAt := time.Now().Add(time.Duration(i) * time.Minute)
			require.NoError(t, repo.Share(ctx, note.ID, 1, title, "alice", "", sharedAt))
		}
	}

	notes, err := repo.ListPublic(ctx, "", 50)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	// Most recently shared first.
	assert.Equal(t, "rust notes", notes[0].Title)

	notes, err = repo.ListPublic(ctx, "go", 50)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "go notes", notes[0].Title)
}

func TestNoteRepository_Counters(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{UID: 1, Title: "n", Category: domain.CategoryPersonal})
	require.NoError(t, err)

	require.NoError(t, repo.IncrLikes(ctx, note.ID, 1))
	require.NoError(t, repo.IncrLikes(ctx, note.ID, 1))
	require.NoError(t, repo.IncrLikes(ctx, note.ID, -1))
	require.NoError(t, repo.IncrComments(ctx, note.ID, 1))

	got, err := repo.GetByID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Likes)
	assert.Equal(t, int64(1), got.Comments)
}
