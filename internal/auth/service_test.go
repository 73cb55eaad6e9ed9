package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bandvibe/band-booking-backend/config"
	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/middleware"
)

type fakeRepo struct {
	users map[string]*User
	bands map[string]*Band
}

func (f *fakeRepo) CreateUser(user *User) error {
	user.ID = uint(len(f.users) + 1)
	f.users[user.Username] = user
	return nil
}

func (f *fakeRepo) CreateBand(band *Band) error {
	band.ID = uint(len(f.bands) + 1)
	f.bands[band.Username] = band
	return nil
}

func (f *fakeRepo) FindUserByUsername(username string) (*User, error) {
	return f.users[username], nil
}

func (f *fakeRepo) FindBandByUsername(username string) (*Band, error) {
	return f.bands[username], nil
}

func (f *fakeRepo) FindBandByID(id uint) (*Band, error) {
	for _, b := range f.bands {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) UsernameTaken(username string) (bool, error) {
	_, inUsers := f.users[username]
	_, inBands := f.bands[username]
	return inUsers || inBands, nil
}

func (f *fakeRepo) EmailTaken(email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	for _, b := range f.bands {
		if b.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListBands() ([]Band, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:   "test-secret",
		JWTAccessTTLHours: 1,
		AdminUsername:     "admin",
		AdminPassword:     "admin-pass",
	}
}

func newTestService() (Service, *fakeRepo) {
	repo := &fakeRepo{users: map[string]*User{}, bands: map[string]*Band{}}
	return NewService(repo, testConfig()), repo
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoginResolvesEachAccountKind(t *testing.T) {
	svc, repo := newTestService()
	repo.users["maria"] = &User{ID: 3, Username: "maria", PasswordHash: hash(t, "user-pass")}
	repo.bands["thecats"] = &Band{ID: 7, Username: "thecats", PasswordHash: hash(t, "band-pass")}

	tests := []struct {
		name     string
		username string
		password string
		wantKind middleware.ActorKind
		wantID   uint
	}{
		{name: "user login", username: "maria", password: "user-pass", wantKind: middleware.ActorUser, wantID: 3},
		{name: "band login", username: "thecats", password: "band-pass", wantKind: middleware.ActorBand, wantID: 7},
		{name: "admin login", username: "admin", password: "admin-pass", wantKind: middleware.ActorAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, actor, err := svc.Login(LoginRequest{Username: tt.username, Password: tt.password})
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.wantKind, actor.Kind)
			assert.Equal(t, tt.wantID, actor.ID)
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, repo := newTestService()
	repo.users["maria"] = &User{ID: 3, Username: "maria", PasswordHash: hash(t, "user-pass")}

	_, _, err := svc.Login(LoginRequest{Username: "maria", Password: "wrong"})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, _, err = svc.Login(LoginRequest{Username: "nobody", Password: "whatever"})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, _, err = svc.Login(LoginRequest{Username: "admin", Password: "wrong"})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestResolveActorPrefersBandsTable(t *testing.T) {
	svc, repo := newTestService()
	repo.bands["thecats"] = &Band{ID: 7, Username: "thecats"}
	repo.users["maria"] = &User{ID: 3, Username: "maria"}

	actor, err := svc.ResolveActor("thecats")
	require.NoError(t, err)
	assert.Equal(t, middleware.ActorBand, actor.Kind)
	assert.Equal(t, uint(7), actor.ID)

	actor, err = svc.ResolveActor("maria")
	require.NoError(t, err)
	assert.Equal(t, middleware.ActorUser, actor.Kind)

	actor, err = svc.ResolveActor("admin")
	require.NoError(t, err)
	assert.Equal(t, middleware.ActorAdmin, actor.Kind)

	_, err = svc.ResolveActor("ghost")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestRegisterUserRejectsTakenIdentity(t *testing.T) {
	svc, repo := newTestService()
	repo.users["maria"] = &User{ID: 3, Username: "maria", Email: "maria@example.com"}

	_, err := svc.RegisterUser(RegisterUserRequest{Username: "maria", Email: "new@example.com", Password: "longenough"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = svc.RegisterUser(RegisterUserRequest{Username: "fresh", Email: "maria@example.com", Password: "longenough"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = svc.RegisterUser(RegisterUserRequest{Username: "admin", Email: "admin@example.com", Password: "longenough"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestRegisterBandValidatesMembers(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.RegisterBand(RegisterBandRequest{
		Username: "thecats", Email: "cats@example.com", Password: "longenough",
		BandName: "The Cats", MembersNumber: 0,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
