package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/dao"
	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/internal/feed"
	"github.com/notehub/note-hub-service/internal/model"
	"github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/code"
	"github.com/notehub/note-hub-service/pkg/workerpool"
)

type testEnv struct {
	noteRepo     domain.NoteRepository
	userRepo     domain.UserRepository
	tagRepo      domain.TagRepository
	commentRepo  domain.CommentRepository
	likeRepo     domain.LikeRepository
	collRepo     domain.CollectionRepository
	collNoteRepo domain.CollectionNoteRepository

	hub     *feed.Hub
	pool    *workerpool.Pool
	notes   NoteService
	users   UserService
	profile ProfileService
	social  SocialService

	uid int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := dao.NewDBEngine(dao.DatabaseConfig{Type: "sqlite", Path: ":memory:", MaxIdleConns: 1, MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	d := dao.New(db)
	logger := zap.NewNop()

	env := &testEnv{
		noteRepo:     dao.NewNoteRepository(d),
		userRepo:     dao.NewUserRepository(d),
		tagRepo:      dao.NewTagRepository(d),
		commentRepo:  dao.NewCommentRepository(d),
		likeRepo:     dao.NewLikeRepository(d),
		collRepo:     dao.NewCollectionRepository(d),
		collNoteRepo: dao.NewCollectionNoteRepository(d),
		hub:          feed.NewHub(logger),
	}
	env.pool = workerpool.New(&workerpool.Config{MaxWorkers: 4, QueueSize: 64}, logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = env.pool.Shutdown(ctx)
		env.hub.Close()
	})

	config := &ServiceConfig{User: UserServiceConfig{RegisterIsEnable: true}}
	tokens := app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"})

	env.profile = NewProfileService(env.userRepo, env.noteRepo, logger)
	env.users = NewUserService(env.userRepo, env.profile, tokens, logger, config)
	env.notes = NewNoteService(
		env.noteRepo, env.userRepo, env.tagRepo, env.commentRepo,
		env.likeRepo, env.collNoteRepo, env.profile, env.hub, env.pool,
		logger, config,
	)
	env.social = NewSocialService(env.noteRepo, env.userRepo, env.likeRepo, env.commentRepo, logger)

	user, err := env.userRepo.Create(context.Background(), &domain.User{
		Email:    "owner@example.com",
		Username: "owner",
		Password: "x",
		Nickname: "Owner",
	})
	require.NoError(t, err)
	env.uid = user.UID
	return env
}

// settle waits for async cascade and feed work to finish.
func (e *testEnv) settle(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, e.pool.WaitIdle(ctx, 10*time.Millisecond))
}

func strPtr(s string) *string { return &s }

func TestNoteService_CreateAndMergePatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{
		Title:        "groceries",
		Content:      "milk",
		Category:     "shoppping-typo",
		ReminderDate: "2026-09-01 10:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "other", created.Category)
	require.NotNil(t, created.ReminderDate)

	env.settle(t)
	user, err := env.userRepo.GetByUID(ctx, env.uid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.TotalNotes)

	// patch only the title, everything else survives
	patched, err := env.notes.Update(ctx, env.uid, created.ID, &dto.NoteUpdateRequest{
		Title: strPtr("weekend groceries"),
	})
	require.NoError(t, err)
	assert.Equal(t, "weekend groceries", patched.Title)
	assert.Equal(t, "milk", patched.Content)
	require.NotNil(t, patched.ReminderDate)

	// an empty reminder clears it
	patched, err = env.notes.Update(ctx, env.uid, created.ID, &dto.NoteUpdateRequest{
		ReminderDate: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, patched.ReminderDate)

	_, err = env.notes.Update(ctx, env.uid, created.ID, &dto.NoteUpdateRequest{
		ReminderDate: strPtr("not a date"),
	})
	require.Error(t, err)
}

func TestNoteService_OwnershipErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "mine"})
	require.NoError(t, err)

	stranger, err := env.userRepo.Create(ctx, &domain.User{
		Email: "other@example.com", Username: "other", Password: "x",
	})
	require.NoError(t, err)

	_, err = env.notes.Get(ctx, stranger.UID, created.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotOwner)

	_, err = env.notes.Get(ctx, env.uid, 99999)
	assert.ErrorIs(t, err, code.ErrorNoteNotExist)
}

func TestNoteService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "doomed"})
	require.NoError(t, err)

	_, err = env.tagRepo.Create(ctx, &domain.Tag{NoteID: created.ID, UID: env.uid, Name: "work"})
	require.NoError(t, err)
	_, err = env.commentRepo.Create(ctx, &domain.Comment{NoteID: created.ID, UID: env.uid, Content: "hi"})
	require.NoError(t, err)
	_, err = env.likeRepo.Create(ctx, &domain.Like{NoteID: created.ID, UID: env.uid})
	require.NoError(t, err)

	coll, err := env.collRepo.Create(ctx, &domain.Collection{UID: env.uid, Name: "inbox"})
	require.NoError(t, err)
	_, err = env.collNoteRepo.Create(ctx, &domain.CollectionNote{CollectionID: coll.ID, NoteID: created.ID, UID: env.uid})
	require.NoError(t, err)

	require.NoError(t, env.notes.Delete(ctx, env.uid, created.ID))
	env.settle(t)

	tags, err := env.tagRepo.ListByNoteID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)

	comments, err := env.commentRepo.ListByNoteID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	likeCount, err := env.likeRepo.CountByNoteID(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, likeCount)

	memberCount, err := env.collNoteRepo.Count(ctx, coll.ID)
	require.NoError(t, err)
	assert.Zero(t, memberCount)
}

func TestNoteService_ShareLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "public note"})
	require.NoError(t, err)

	share, err := env.notes.Share(ctx, env.uid, created.ID)
	require.NoError(t, err)
	require.NotEmpty(t, share.ShareID)
	assert.Equal(t, "/shared/"+share.ShareID, share.ShareURL)

	// sharing again keeps the existing id
	again, err := env.notes.Share(ctx, env.uid, created.ID)
	require.NoError(t, err)
	assert.Equal(t, share.ShareID, again.ShareID)

	shared, err := env.notes.GetShared(ctx, share.ShareID)
	require.NoError(t, err)
	assert.Equal(t, "public note", shared.Title)
	assert.Equal(t, "Owner", shared.AuthorName)

	require.NoError(t, env.notes.Unshare(ctx, env.uid, created.ID))

	_, err = env.notes.GetShared(ctx, share.ShareID)
	assert.ErrorIs(t, err, code.ErrorNoteNotShared)
	assert.ErrorIs(t, env.notes.Unshare(ctx, env.uid, created.ID), code.ErrorNoteNotShared)
}

func TestNoteService_ListAppliesFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "alpha", Category: "work"})
	require.NoError(t, err)
	_, err = env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "beta", Category: "personal"})
	require.NoError(t, err)

	got, err := env.notes.List(ctx, env.uid, &dto.NoteListRequest{Category: "work"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alpha", got[0].Title)

	all, err := env.notes.List(ctx, env.uid, &dto.NoteListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNoteService_FeedSnapshots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sub := env.hub.Subscribe(env.uid)
	require.NotNil(t, sub)

	created, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "live"})
	require.NoError(t, err)
	env.settle(t)

	select {
	case snap := <-sub.C():
		require.Len(t, snap, 1)
		assert.Equal(t, created.ID, snap[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after create")
	}

	// delete pushes the empty full replacement
	require.NoError(t, env.notes.Delete(ctx, env.uid, created.ID))
	env.settle(t)

	select {
	case snap := <-sub.C():
		assert.Empty(t, snap)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after delete")
	}

	env.hub.Unsubscribe(sub)
	_, err = env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "after teardown"})
	require.NoError(t, err)
	env.settle(t)

	snap, ok := <-sub.C()
	assert.False(t, ok)
	assert.Nil(t, snap)
}

func TestSocialService_LikesAndComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "liked"})
	require.NoError(t, err)

	toggled, err := env.social.ToggleLike(ctx, env.uid, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Liked)
	assert.Equal(t, int64(1), toggled.Likes)

	toggled, err = env.social.ToggleLike(ctx, env.uid, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Liked)
	assert.Zero(t, toggled.Likes)

	comment, err := env.social.AddComment(ctx, env.uid, created.ID, &dto.CommentCreateRequest{Content: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "Owner", comment.AuthorName)

	stranger, err := env.userRepo.Create(ctx, &domain.User{
		Email: "other@example.com", Username: "other", Password: "x",
	})
	require.NoError(t, err)
	assert.ErrorIs(t, env.social.DeleteComment(ctx, stranger.UID, comment.ID), code.ErrorCommentNotOwner)

	require.NoError(t, env.social.DeleteComment(ctx, env.uid, comment.ID))

	note, err := env.noteRepo.GetByID(ctx, created.ID, env.uid)
	require.NoError(t, err)
	assert.Zero(t, note.Comments)
}

func TestUserService_RegisterAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, err := env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "new@example.com",
		Username:        "newuser",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Contains(t, registered.Badges, domain.BadgeNewUser)

	_, err = env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "new@example.com",
		Username:        "someoneelse",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	assert.ErrorIs(t, err, code.ErrorUserEmailAlreadyExists)

	_, err = env.users.Login(ctx, &dto.UserLoginRequest{Email: "new@example.com", Password: "wrong"}, "127.0.0.1")
	assert.ErrorIs(t, err, code.ErrorUserPasswordWrong)

	logged, err := env.users.Login(ctx, &dto.UserLoginRequest{Email: "new@example.com", Password: "secret123"}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, logged.Token)
	assert.Equal(t, int64(1), logged.ActiveDays)

	// second login the same day does not count another active day
	logged, err = env.users.Login(ctx, &dto.UserLoginRequest{Username: "newuser", Password: "secret123"}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), logged.ActiveDays)
}

func TestProfileService_Badges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < domain.BadgeNoteMasterThreshold; i++ {
		_, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{Title: "n"})
		require.NoError(t, err)
	}
	badges, err := env.profile.RefreshBadges(ctx, env.uid)
	require.NoError(t, err)
	assert.Contains(t, badges, domain.BadgeNoteMaster)
	assert.NotContains(t, badges, domain.BadgeSharingExpert)

	notes, err := env.noteRepo.ListByUID(ctx, env.uid)
	require.NoError(t, err)
	for i := 0; i < domain.BadgeSharingExpertThreshold; i++ {
		_, err := env.notes.Share(ctx, env.uid, notes[i].ID)
		require.NoError(t, err)
	}
	env.settle(t)

	badges, err = env.profile.RefreshBadges(ctx, env.uid)
	require.NoError(t, err)
	assert.Contains(t, badges, domain.BadgeSharingExpert)
}
