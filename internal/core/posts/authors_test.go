package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	"Chirp/internal/core/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory implements users.Directory with an in-memory record set
type fakeDirectory struct {
	records map[string]*users.User
	err     error
	calls   [][]string
	limits  []int
}

func newFakeDirectory(records ...*users.User) *fakeDirectory {
	d := &fakeDirectory{records: make(map[string]*users.User)}
	for _, r := range records {
		d.records[r.ID] = r
	}
	return d
}

func (d *fakeDirectory) GetUsersByIDs(ctx context.Context, ids []string, limit int) ([]*users.User, error) {
	d.calls = append(d.calls, ids)
	d.limits = append(d.limits, limit)
	if d.err != nil {
		return nil, d.err
	}
	var out []*users.User
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		if r, ok := d.records[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (d *fakeDirectory) GetUsersByUsernames(ctx context.Context, usernames []string, limit int) ([]*users.User, error) {
	return nil, errors.New("not used")
}

func namedUser(id, username string) *users.User {
	return &users.User{ID: id, Username: &username, ProfileImageURL: "https://img.example.com/" + id}
}

func testPost(id, authorID string, at time.Time) *Post {
	return &Post{ID: id, AuthorID: authorID, Content: "🙂", CreatedAt: at}
}

func TestResolve_JoinsAuthorsInPostOrder(t *testing.T) {
	dir := newFakeDirectory(namedUser("u1", "alice"), namedUser("u2", "bob"))
	resolver := NewAuthorResolver(dir)

	now := time.Now()
	input := []*Post{
		testPost("p3", "u2", now),
		testPost("p2", "u1", now.Add(-time.Minute)),
		testPost("p1", "u2", now.Add(-2*time.Minute)),
	}

	result, err := resolver.Resolve(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, "p3", result[0].Post.ID)
	assert.Equal(t, "bob", result[0].Author.Username)
	assert.Equal(t, "alice", result[1].Author.Username)
	assert.Equal(t, "bob", result[2].Author.Username)
	assert.Equal(t, "https://img.example.com/u2", result[2].Author.ProfileImageURL)

	// One batched call with duplicates removed
	require.Len(t, dir.calls, 1)
	assert.ElementsMatch(t, []string{"u1", "u2"}, dir.calls[0])
	assert.Equal(t, users.MaxDirectoryBatch, dir.limits[0])
}

func TestResolve_EmptyInputSkipsDirectory(t *testing.T) {
	dir := newFakeDirectory()
	resolver := NewAuthorResolver(dir)

	result, err := resolver.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.Empty(t, dir.calls)
}

func TestResolve_MissingAuthorFailsWholeBatch(t *testing.T) {
	dir := newFakeDirectory(namedUser("u1", "alice"))
	resolver := NewAuthorResolver(dir)

	input := []*Post{
		testPost("p1", "u1", time.Now()),
		testPost("p2", "u-missing", time.Now()),
	}

	result, err := resolver.Resolve(context.Background(), input)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthorNotFound)

	var notFound *AuthorNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "u-missing", notFound.AuthorID)
}

func TestResolve_AuthorWithoutUsernameFails(t *testing.T) {
	dir := newFakeDirectory(&users.User{ID: "u1"})
	resolver := NewAuthorResolver(dir)

	_, err := resolver.Resolve(context.Background(), []*Post{testPost("p1", "u1", time.Now())})
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestResolve_DirectoryErrorPropagates(t *testing.T) {
	dir := newFakeDirectory()
	dir.err = errors.New("directory unavailable")
	resolver := NewAuthorResolver(dir)

	_, err := resolver.Resolve(context.Background(), []*Post{testPost("p1", "u1", time.Now())})
	require.Error(t, err)
	assert.ErrorIs(t, err, dir.err)
	assert.NotErrorIs(t, err, ErrAuthorNotFound)
}
