package users

import (
	"context"
	"errors"
	"testing"

	"Chirp/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDirectory is a mock implementation of Directory
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetUsersByIDs(ctx context.Context, ids []string, limit int) ([]*User, error) {
	args := m.Called(ctx, ids, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockDirectory) GetUsersByUsernames(ctx context.Context, usernames []string, limit int) ([]*User, error) {
	args := m.Called(ctx, usernames, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestGetProfileByUsername_Success(t *testing.T) {
	dir := new(MockDirectory)
	svc := NewUserService(dir, logging.Discard())
	ctx := context.Background()

	dir.On("GetUsersByUsernames", ctx, []string{"alice"}, 1).Return([]*User{
		{ID: "user_1", Username: strPtr("alice"), ProfileImageURL: "https://img.example.com/alice.png"},
	}, nil)

	profile, err := svc.GetProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &AuthorSummary{
		ID:              "user_1",
		Username:        "alice",
		ProfileImageURL: "https://img.example.com/alice.png",
	}, profile)
	dir.AssertExpectations(t)
}

func TestGetProfileByUsername_StripsAtPrefix(t *testing.T) {
	dir := new(MockDirectory)
	svc := NewUserService(dir, logging.Discard())
	ctx := context.Background()

	dir.On("GetUsersByUsernames", ctx, []string{"bob"}, 1).Return([]*User{
		{ID: "user_2", Username: strPtr("bob")},
	}, nil)

	profile, err := svc.GetProfileByUsername(ctx, "@bob")
	require.NoError(t, err)
	assert.Equal(t, "user_2", profile.ID)
}

func TestGetProfileByUsername_UsesDirectoryMatch(t *testing.T) {
	dir := new(MockDirectory)
	svc := NewUserService(dir, logging.Discard())
	ctx := context.Background()

	// The directory decides what matches; its casing is returned unchanged.
	dir.On("GetUsersByUsernames", ctx, []string{"Carol"}, 1).Return([]*User{
		{ID: "user_4", Username: strPtr("carol")},
	}, nil)

	profile, err := svc.GetProfileByUsername(ctx, "Carol")
	require.NoError(t, err)
	assert.Equal(t, "user_4", profile.ID)
	assert.Equal(t, "carol", profile.Username)
	dir.AssertExpectations(t)
}

func TestGetProfileByUsername_NotFound(t *testing.T) {
	dir := new(MockDirectory)
	svc := NewUserService(dir, logging.Discard())
	ctx := context.Background()

	dir.On("GetUsersByUsernames", ctx, []string{"nonexistent"}, 1).Return([]*User{}, nil)

	_, err := svc.GetProfileByUsername(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetProfileByUsername_RecordWithoutUsername(t *testing.T) {
	dir := new(MockDirectory)
	svc := NewUserService(dir, logging.Discard())
	ctx := context.Background()

	dir.On("GetUsersByUsernames", ctx, []string{"ghost"}, 1).Return([]*User{
		{ID: "user_3", Username: nil},
	}, nil)

	_, err := svc.GetProfileByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetProfileByUsername_InvalidInput(t *testing.T) {
	dir := new(MockDirectory)
	svc := NewUserService(dir, logging.Discard())

	for _, username := range []string{"", "   ", "@"} {
		_, err := svc.GetProfileByUsername(context.Background(), username)
		assert.True(t, IsInvalidUsername(err), "expected invalid username error for %q", username)
	}
	dir.AssertNotCalled(t, "GetUsersByUsernames", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetProfileByUsername_DirectoryError(t *testing.T) {
	dir := new(MockDirectory)
	svc := NewUserService(dir, logging.Discard())
	ctx := context.Background()

	upstream := errors.New("connection refused")
	dir.On("GetUsersByUsernames", ctx, []string{"carol"}, 1).Return(nil, upstream)

	_, err := svc.GetProfileByUsername(ctx, "carol")
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestUserSummary(t *testing.T) {
	var nilUser *User
	_, ok := nilUser.Summary()
	assert.False(t, ok)

	_, ok = (&User{ID: "x", Username: strPtr("")}).Summary()
	assert.False(t, ok)

	s, ok := (&User{ID: "x", Username: strPtr("dana")}).Summary()
	assert.True(t, ok)
	assert.Equal(t, "dana", s.Username)
}
