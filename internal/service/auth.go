package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/projecthub-server/internal/apperr"
	"github.com/dtroode/projecthub-server/internal/logger"
	"github.com/dtroode/projecthub-server/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dummyPassword is hashed once and compared against when the email is unknown,
// so login takes the same time whether or not the account exists.
const dummyPassword = "projecthub-dummy-password"

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
	now          func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
		now:          time.Now,
	}
}

// Register validates input, stores the user and issues a token for it.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.Session, error) {
	a.logger.Debug("Auth service: registering user",
		"email", params.Email,
		"role", params.Role)

	if params.Name == "" || params.Email == "" || params.Password == "" || params.Role == "" {
		return model.Session{}, apperr.NewErrMissingFields()
	}
	if !emailPattern.MatchString(params.Email) {
		return model.Session{}, apperr.NewErrInvalidEmail()
	}
	if !params.Role.Valid() {
		return model.Session{}, apperr.NewErrInvalidRole(string(params.Role))
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Role:         params.Role,
		CreatedAt:    a.now().UTC(),
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		a.logger.Info("Auth service: user already exists",
			"email", params.Email)
		return model.Session{}, apperr.NewErrEmailIsTaken()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := a.issue(user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"role", user.Role)

	return session, nil
}

// Login checks credentials and issues a token. Unknown email and wrong password
// produce the same error.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	a.logger.Debug("Auth service: login attempt",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.compareDummy(password)
		a.logger.Info("Auth service: login for unknown email",
			"email", email)
		return model.Session{}, apperr.NewErrInvalidCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	err = a.hasher.Compare(user.PasswordHash, password)
	if errors.Is(err, model.ErrPasswordMismatch) {
		a.logger.Info("Auth service: wrong password",
			"user_id", user.ID)
		return model.Session{}, apperr.NewErrInvalidCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to compare password",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to compare password: %w", err)
	}

	session, err := a.issue(user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return session, nil
}

func (a *Auth) issue(user model.User) (model.Session, error) {
	token, err := a.tokenManager.GenerateToken(model.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to generate token",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return model.Session{
		User:  user.Public(),
		Token: token,
	}, nil
}

func (a *Auth) compareDummy(password string) {
	a.dummyOnce.Do(func() {
		hash, err := a.hasher.Hash(dummyPassword)
		if err != nil {
			a.logger.Warn("Auth service: failed to prepare dummy hash",
				"error", err.Error())
			return
		}
		a.dummyHash = hash
	})

	if a.dummyHash != nil {
		_ = a.hasher.Compare(a.dummyHash, password)
	}
}
