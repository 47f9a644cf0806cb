package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/pkg/code"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "alice@example.com",
		Username:        "alice",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token)
	assert.Contains(t, created.Badges, "new_user")

	// duplicate email and duplicate username are both rejected
	_, err = env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "alice@example.com",
		Username:        "alice2",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	assert.ErrorIs(t, err, code.ErrorUserEmailAlreadyExists)

	_, err = env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "alice2@example.com",
		Username:        "alice",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	assert.ErrorIs(t, err, code.ErrorUserAlreadyExists)

	_, err = env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "bob@example.com",
		Username:        "bob",
		Password:        "secret123",
		ConfirmPassword: "different",
	})
	assert.ErrorIs(t, err, code.ErrorUserPasswordNotMatch)

	_, err = env.users.Login(ctx, &dto.UserLoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, code.ErrorUserPasswordWrong)

	// a missing account reads the same as a wrong password
	_, err = env.users.Login(ctx, &dto.UserLoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, code.ErrorUserPasswordWrong)

	loggedIn, err := env.users.Login(ctx, &dto.UserLoginRequest{
		Username: "alice",
		Password: "secret123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, loggedIn.Token)
	assert.Equal(t, int64(1), loggedIn.ActiveDays)

	// a second login on the same day does not count another active day
	loggedIn, err = env.users.Login(ctx, &dto.UserLoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), loggedIn.ActiveDays)
}

func TestUserService_RegisterDisabled(t *testing.T) {
	env := newTestEnv(t)

	disabled := NewUserService(env.userRepo, env.profile, nil, zap.NewNop(), &ServiceConfig{})
	_, err := disabled.Register(context.Background(), &dto.UserCreateRequest{
		Email:           "carol@example.com",
		Username:        "carol",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	assert.ErrorIs(t, err, code.ErrorUserRegisterIsDisable)
}

func TestUserService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "dave@example.com",
		Username:        "dave",
		Password:        "oldpass1",
		ConfirmPassword: "oldpass1",
	})
	require.NoError(t, err)

	err = env.users.ChangePassword(ctx, created.UID, &dto.UserChangePasswordRequest{
		OldPassword:     "wrong",
		Password:        "newpass1",
		ConfirmPassword: "newpass1",
	})
	assert.ErrorIs(t, err, code.ErrorUserPasswordWrong)

	err = env.users.ChangePassword(ctx, created.UID, &dto.UserChangePasswordRequest{
		OldPassword:     "oldpass1",
		Password:        "newpass1",
		ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)

	_, err = env.users.Login(ctx, &dto.UserLoginRequest{
		Username: "dave",
		Password: "oldpass1",
	}, "")
	assert.ErrorIs(t, err, code.ErrorUserPasswordWrong)

	loggedIn, err := env.users.Login(ctx, &dto.UserLoginRequest{
		Username: "dave",
		Password: "newpass1",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "dave", loggedIn.Username)
}

func TestProfileService_BadgesNeverRevoked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := env.notes.Create(ctx, env.uid, &dto.NoteCreateRequest{
			Title: fmt.Sprintf("note %d", i),
		})
		require.NoError(t, err)
	}
	env.settle(t)

	badges, err := env.profile.RefreshBadges(ctx, env.uid)
	require.NoError(t, err)
	assert.Contains(t, badges, "note_master")

	// dropping below the threshold keeps the earned badge
	notes, err := env.noteRepo.ListByUID(ctx, env.uid)
	require.NoError(t, err)
	for _, n := range notes {
		require.NoError(t, env.notes.Delete(ctx, env.uid, n.ID))
	}
	env.settle(t)

	badges, err = env.profile.RefreshBadges(ctx, env.uid)
	require.NoError(t, err)
	assert.Contains(t, badges, "note_master")
}
