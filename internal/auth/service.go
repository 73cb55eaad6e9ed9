package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/bandvibe/band-booking-backend/config"
	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/middleware"
)

type Service interface {
	RegisterUser(req RegisterUserRequest) (*User, error)
	RegisterBand(req RegisterBandRequest) (*Band, error)
	Login(req LoginRequest) (string, *middleware.Actor, error)
	ResolveActor(username string) (middleware.Actor, error)
	UsernameAvailable(username string) (bool, error)
	EmailAvailable(email string) (bool, error)
	ListBands() ([]Band, error)
	GetBand(id uint) (*Band, error)
}

type service struct {
	repo Repository
	cfg  *config.Config
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{repo: repo, cfg: cfg}
}

func (s *service) RegisterUser(req RegisterUserRequest) (*User, error) {
	if err := s.checkIdentityFree(req.Username, req.Email); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	user := &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    req.BirthDate,
		Gender:       req.Gender,
		Country:      req.Country,
		Address:      req.Address,
		Telephone:    req.Telephone,
	}
	if err := s.repo.CreateUser(user); err != nil {
		logrus.Errorf("❌ Failed to register user %s: %v", req.Username, err)
		return nil, apperr.Storage(err)
	}
	logrus.Infof("✅ Registered user %s (id=%d)", user.Username, user.ID)
	return user, nil
}

func (s *service) RegisterBand(req RegisterBandRequest) (*Band, error) {
	if err := s.checkIdentityFree(req.Username, req.Email); err != nil {
		return nil, err
	}
	if req.MembersNumber <= 0 {
		return nil, apperr.Validation("members_number must be positive")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	band := &Band{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  string(hash),
		BandName:      req.BandName,
		MusicGenres:   req.MusicGenres,
		Description:   req.Description,
		MembersNumber: req.MembersNumber,
		FoundedYear:   req.FoundedYear,
		City:          req.City,
		Telephone:     req.Telephone,
	}
	if err := s.repo.CreateBand(band); err != nil {
		logrus.Errorf("❌ Failed to register band %s: %v", req.BandName, err)
		return nil, apperr.Storage(err)
	}
	logrus.Infof("✅ Registered band %s (id=%d)", band.BandName, band.ID)
	return band, nil
}

func (s *service) checkIdentityFree(username, email string) error {
	if username == s.cfg.AdminUsername {
		return apperr.Conflict("username %s is already taken", username)
	}
	taken, err := s.repo.UsernameTaken(username)
	if err != nil {
		return apperr.Storage(err)
	}
	if taken {
		return apperr.Conflict("username %s is already taken", username)
	}
	taken, err = s.repo.EmailTaken(email)
	if err != nil {
		return apperr.Storage(err)
	}
	if taken {
		return apperr.Conflict("email %s is already registered", email)
	}
	return nil
}

// Login checks the admin account first, then bands, then users. The issued
// token carries only the username; the actor kind is re-resolved on every
// request.
func (s *service) Login(req LoginRequest) (string, *middleware.Actor, error) {
	if req.Username == s.cfg.AdminUsername {
		if req.Password != s.cfg.AdminPassword {
			return "", nil, apperr.Forbidden("invalid credentials")
		}
		actor := middleware.Actor{Kind: middleware.ActorAdmin, Username: req.Username}
		token, err := s.issueToken(req.Username)
		return token, &actor, err
	}

	band, err := s.repo.FindBandByUsername(req.Username)
	if err != nil {
		return "", nil, apperr.Storage(err)
	}
	if band != nil {
		if bcrypt.CompareHashAndPassword([]byte(band.PasswordHash), []byte(req.Password)) != nil {
			return "", nil, apperr.Forbidden("invalid credentials")
		}
		actor := middleware.Actor{Kind: middleware.ActorBand, ID: band.ID, Username: band.Username}
		token, err := s.issueToken(band.Username)
		return token, &actor, err
	}

	user, err := s.repo.FindUserByUsername(req.Username)
	if err != nil {
		return "", nil, apperr.Storage(err)
	}
	if user == nil {
		return "", nil, apperr.Forbidden("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, apperr.Forbidden("invalid credentials")
	}
	actor := middleware.Actor{Kind: middleware.ActorUser, ID: user.ID, Username: user.Username}
	token, err := s.issueToken(user.Username)
	return token, &actor, err
}

func (s *service) issueToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Duration(s.cfg.JWTAccessTTLHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTAccessSecret))
	if err != nil {
		logrus.Errorf("❌ Failed to sign token for %s: %v", username, err)
		return "", apperr.Storage(err)
	}
	return signed, nil
}

// ResolveActor maps a token username back onto an actor. A username found in
// the bands table acts as that band; otherwise it acts as a plain user.
func (s *service) ResolveActor(username string) (middleware.Actor, error) {
	if username == s.cfg.AdminUsername {
		return middleware.Actor{Kind: middleware.ActorAdmin, Username: username}, nil
	}
	band, err := s.repo.FindBandByUsername(username)
	if err != nil {
		return middleware.Actor{}, apperr.Storage(err)
	}
	if band != nil {
		return middleware.Actor{Kind: middleware.ActorBand, ID: band.ID, Username: band.Username}, nil
	}
	user, err := s.repo.FindUserByUsername(username)
	if err != nil {
		return middleware.Actor{}, apperr.Storage(err)
	}
	if user == nil {
		return middleware.Actor{}, apperr.Forbidden("unknown account %s", username)
	}
	return middleware.Actor{Kind: middleware.ActorUser, ID: user.ID, Username: user.Username}, nil
}

func (s *service) UsernameAvailable(username string) (bool, error) {
	if username == s.cfg.AdminUsername {
		return false, nil
	}
	taken, err := s.repo.UsernameTaken(username)
	if err != nil {
		return false, apperr.Storage(err)
	}
	return !taken, nil
}

func (s *service) EmailAvailable(email string) (bool, error) {
	taken, err := s.repo.EmailTaken(email)
	if err != nil {
		return false, apperr.Storage(err)
	}
	return !taken, nil
}

func (s *service) ListBands() ([]Band, error) {
	bands, err := s.repo.ListBands()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return bands, nil
}

func (s *service) GetBand(id uint) (*Band, error) {
	band, err := s.repo.FindBandByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if band == nil {
		return nil, apperr.NotFound("band %d not found", id)
	}
	return band, nil
}
