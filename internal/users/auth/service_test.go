// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandresy/fiangonana/internal/platform/apperr"
	"github.com/mandresy/fiangonana/internal/platform/sec"
	"github.com/mandresy/fiangonana/internal/users/auth"
)

// # Test Doubles

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	byID       map[string]*auth.Utilisateur
	byEmail    map[string]*auth.Utilisateur
	byUsername map[string]*auth.Utilisateur
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       map[string]*auth.Utilisateur{},
		byEmail:    map[string]*auth.Utilisateur{},
		byUsername: map[string]*auth.Utilisateur{},
	}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.Utilisateur, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.Utilisateur, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.Utilisateur, error) {
	if u, ok := r.byUsername[username]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.Utilisateur) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	r.byUsername[user.Username] = user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	if u, ok := r.byID[userID]; ok {
		u.PasswordHash = newHash
	}
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, userID string) error { return nil }

func (r *fakeUserRepo) MarkVerified(_ context.Context, userID string) error {
	if u, ok := r.byID[userID]; ok {
		u.IsVerified = true
	}
	return nil
}

// fakeSessionRepo is an in-memory SessionRepository keyed by token hash.
type fakeSessionRepo struct {
	byHash map[string]*auth.Session
	byID   map[string]*auth.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		byHash: map[string]*auth.Session{},
		byID:   map[string]*auth.Session{},
	}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *auth.Session) error {
	r.byHash[session.TokenHash] = session
	r.byID[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	s, ok := r.byHash[tokenHash]
	if !ok || s.IsRevoked {
		return nil, apperr.NotFound("Session")
	}
	return s, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, sessionID string) error {
	if s, ok := r.byID[sessionID]; ok {
		s.IsRevoked = true
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAll(_ context.Context, userID string) error {
	for _, s := range r.byID {
		if s.UserID == userID {
			s.IsRevoked = true
		}
	}
	return nil
}

func (r *fakeSessionRepo) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, s := range r.byID {
		if s.UserID == userID && s.ID != currentSessionID {
			s.IsRevoked = true
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) error { return nil }

// fakeTokenRepo is an in-memory reset/verification token store.
type fakeTokenRepo struct {
	tokens map[string]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]string{}}
}

func (r *fakeTokenRepo) Set(_ context.Context, token, userID string, _ time.Duration) error {
	r.tokens[token] = userID
	return nil
}

func (r *fakeTokenRepo) Get(_ context.Context, token string) (string, error) {
	if userID, ok := r.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Token")
}

func (r *fakeTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

// fakeTokenProvider signs predictable tokens for assertions.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	return "jwt-" + userID + "-" + role, nil
}

// fakeEnroller records registry enrollments triggered by registration.
type fakeEnroller struct {
	enrolled []string
}

func (e *fakeEnroller) Enroll(_ context.Context, nom, prenom, sexe string) (string, error) {
	id := "adherent-" + nom
	e.enrolled = append(e.enrolled, id)
	return id, nil
}

func newTestService() (*auth.Service, *fakeUserRepo, *fakeSessionRepo, *fakeEnroller) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	enroller := &fakeEnroller{}
	service := auth.NewService(
		users,
		sessions,
		newFakeTokenRepo(),
		newFakeTokenRepo(),
		fakeTokenProvider{},
		enroller,
	)
	return service, users, sessions, enroller
}

// # Registration

/*
TestRegister_DefaultRole ensures self-registration never grants elevated roles.
*/
func TestRegister_DefaultRole(t *testing.T) {
	service, _, _, _ := newTestService()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "mandresy",
		Email:    "mandresy@fiangonana.app",
		Password: "secret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleUtilisateur, user.Role)
	assert.False(t, user.IsVerified)
	assert.Nil(t, user.AdherentID)
}

/*
TestRegister_LinksAdherent verifies that a complete civil identity at signup
creates and links a registry member.
*/
func TestRegister_LinksAdherent(t *testing.T) {
	service, _, _, enroller := newTestService()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "rakoto",
		Email:    "rakoto@fiangonana.app",
		Password: "secret-password",
		Nom:      "Rakoto",
		Prenom:   "Jean",
		Sexe:     "M",
	})

	require.NoError(t, err)
	require.NotNil(t, user.AdherentID)
	assert.Equal(t, "adherent-Rakoto", *user.AdherentID)
	assert.Len(t, enroller.enrolled, 1)
}

/*
TestRegister_EmailConflict rejects duplicate email addresses.
*/
func TestRegister_EmailConflict(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "first",
		Email:    "taken@fiangonana.app",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "second",
		Email:    "taken@fiangonana.app",
		Password: "secret-password",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

// # Authentication

/*
TestLogin_ByEmailAndUsername verifies the flexible login lookup.
*/
func TestLogin_ByEmailAndUsername(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "rasoa",
		Email:    "rasoa@fiangonana.app",
		Password: "secret-password",
	})
	require.NoError(t, err)

	// 1. Login with email
	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "rasoa@fiangonana.app",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	// 2. Login with username
	session, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "rasoa",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "rasoa", session.User.Username)
}

/*
TestLogin_WrongPassword returns a generic Unauthorized error.
*/
func TestLogin_WrongPassword(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "rasoa",
		Email:    "rasoa@fiangonana.app",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "rasoa",
		Password: "wrong-password",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	// Same message as an unknown login, to prevent account enumeration.
	assert.Equal(t, "Invalid login credentials", ae.Message)
}

/*
TestLogout_Idempotent treats an unknown refresh token as a successful logout.
*/
func TestLogout_Idempotent(t *testing.T) {
	service, _, _, _ := newTestService()

	err := service.Logout(context.Background(), "never-issued-token")
	assert.NoError(t, err)
}

// # Session Rotation

/*
TestRefreshSession_RotatesToken verifies that refreshing revokes the old
session and issues a different refresh token.
*/
func TestRefreshSession_RotatesToken(t *testing.T) {
	service, _, sessions, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "rasoa",
		Email:    "rasoa@fiangonana.app",
		Password: "secret-password",
	})
	require.NoError(t, err)

	first, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "rasoa",
		Password: "secret-password",
	})
	require.NoError(t, err)

	second, err := service.RefreshSession(context.Background(), first.RefreshToken, "ua", "ip")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The first token must be dead after rotation.
	_, err = service.RefreshSession(context.Background(), first.RefreshToken, "ua", "ip")
	require.Error(t, err)

	// Exactly one live session should remain.
	live := 0
	for _, s := range sessions.byID {
		if !s.IsRevoked {
			live++
		}
	}
	assert.Equal(t, 1, live)
}

/*
TestResetPassword_RevokesSessions verifies the forgot-password happy path.
*/
func TestResetPassword_RevokesSessions(t *testing.T) {
	service, users, sessions, _ := newTestService()

	registered, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "rasoa",
		Email:    "rasoa@fiangonana.app",
		Password: "old-password",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "rasoa",
		Password: "old-password",
	})
	require.NoError(t, err)

	token, err := service.RequestPasswordReset(context.Background(), "rasoa@fiangonana.app")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(context.Background(), token, "new-password"))

	// Old sessions are revoked and the new password is live.
	for _, s := range sessions.byID {
		assert.True(t, s.IsRevoked)
	}
	assert.True(t, sec.CheckPasswordHash("new-password", users.byID[registered.ID].PasswordHash))

	// The token is single-use.
	require.Error(t, service.ResetPassword(context.Background(), token, "another-password"))
}
