package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/workhive/workhive/internal/config"
	"github.com/workhive/workhive/internal/db"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	usersByID    map[uuid.UUID]*db.User
	usersByEmail map[string]*db.User
	err          error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		usersByID:    make(map[uuid.UUID]*db.User),
		usersByEmail: make(map[string]*db.User),
	}
}

func (s *fakeUserStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	if s.err != nil {
		return uuid.Nil, s.err
	}
	user := &db.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.usersByID[user.ID] = user
	s.usersByEmail[email] = user
	return user.ID, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.usersByEmail[email], nil
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*db.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.usersByID[id], nil
}

func (s *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.usersByEmail[email]
	return ok, nil
}

func newTestUserService(store UserStore) *UserService {
	return NewUserService(store, &config.PasswordConfig{BcryptCost: bcrypt.MinCost})
}

func TestUserService_Register(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash, "password must be hashed")
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	req := &RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "password123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)

	var dup *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "ada@example.com", dup.Email)
}

func TestUserService_Register_StoreFailure(t *testing.T) {
	store := newFakeUserStore()
	store.err = errors.New("connection refused")
	svc := newTestUserService(store)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
	})
	assert.Error(t, err)
}

func TestUserService_Login(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	registered, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
	})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), &LoginRequest{
		Email: "ada@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email: "ada@example.com", Password: "wrong-password",
	})
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc := newTestUserService(newFakeUserStore())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	require.Error(t, err)

	// The same error as a wrong password, so callers cannot probe for accounts
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestUserService_GetUser(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	registered, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
	})
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)

	_, err = svc.GetUser(context.Background(), uuid.New())
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}
