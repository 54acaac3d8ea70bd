package service

import (
	"context"
	"testing"

	"github.com/Sharufkhanniazi/Task-Management-System/internal/auth"
	dom "github.com/Sharufkhanniazi/Task-Management-System/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail    map[string]dom.User
	byUsername map[string]bool

	createErr   error
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:    make(map[string]dom.User),
		byUsername: make(map[string]bool),
	}
}

func (f *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	if _, ok := f.byEmail[email]; ok {
		return true, nil
	}
	return f.byUsername[username], nil
}

func (f *fakeUserRepo) Create(_ context.Context, email, username, passwordHash string) (dom.User, error) {
	f.createCalls++
	if f.createErr != nil {
		return dom.User{}, f.createErr
	}
	u := dom.User{ID: uuid.New(), Email: email, Username: username, PasswordHash: passwordHash}
	f.byEmail[email] = u
	f.byUsername[username] = true
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func newUserService(r *fakeUserRepo) (*UserService, auth.Codec) {
	codec := auth.NewCodec([]byte("test-secret"))
	return NewUserService(r, auth.NewHasher(4), codec), codec
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc, codec := newUserService(repo)

	u, token, err := svc.Register(context.Background(), "a@x.com", "alice", "secret1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", u.Email)
	require.Equal(t, "alice", u.Username)
	require.NotEqual(t, "secret1", u.PasswordHash)

	ident, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, ident.ID)
	require.Equal(t, "a@x.com", ident.Email)
	require.Equal(t, "alice", ident.Username)
}

func TestUserService_Register_InvalidInput(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc, _ := newUserService(repo)

	tests := []struct {
		name                      string
		email, username, password string
	}{
		{"empty email", "", "alice", "secret1"},
		{"malformed email", "not-an-email", "alice", "secret1"},
		{"short username", "a@x.com", "al", "secret1"},
		{"long username", "a@x.com", string(make([]byte, 51)), "secret1"},
		{"short password", "a@x.com", "alice", "12345"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.email, tc.username, tc.password)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	require.Zero(t, repo.createCalls, "validation failures must not reach the store")
}

func TestUserService_Register_Conflict(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc, _ := newUserService(repo)

	_, _, err := svc.Register(context.Background(), "a@x.com", "alice", "secret1")
	require.NoError(t, err)
	calls := repo.createCalls

	// Same email, different username.
	_, _, err = svc.Register(context.Background(), "a@x.com", "bob", "secret1")
	require.ErrorIs(t, err, ErrUserExists)

	// Same username, different email.
	_, _, err = svc.Register(context.Background(), "b@x.com", "alice", "secret1")
	require.ErrorIs(t, err, ErrUserExists)

	require.Equal(t, calls, repo.createCalls, "conflicts must not insert")
}

func TestUserService_Register_RaceMapsUniqueViolationToConflict(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	// Pre-check sees nothing, but the insert hits the unique constraint,
	// as happens when two registrations race.
	repo.createErr = &pgconn.PgError{Code: "23505"}
	svc, _ := newUserService(repo)

	_, _, err := svc.Register(context.Background(), "a@x.com", "alice", "secret1")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc, codec := newUserService(repo)

	registered, _, err := svc.Register(context.Background(), "a@x.com", "alice", "secret1")
	require.NoError(t, err)

	u, token, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, registered.ID, u.ID)

	ident, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, ident.ID)
}

func TestUserService_Login_UnknownEmailAndWrongPasswordFailTheSame(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc, _ := newUserService(repo)

	_, _, err := svc.Register(context.Background(), "a@x.com", "alice", "secret1")
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(context.Background(), "nobody@x.com", "secret1")
	_, _, errWrong := svc.Login(context.Background(), "a@x.com", "wrong-password")

	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}
