package service

import (
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-carver/domain"
	"github.com/beka-birhanu/vinom-carver/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

var _ i.Authenticator = &Auth{}

// Auth registers and signs in maze authors.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	logger    i.Logger
}

// NewAuthService wires the user repository and tokenizer.
func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer, logger i.Logger) (*Auth, error) {
	if userRepo == nil || tokenizer == nil || logger == nil {
		return nil, errors.New("auth service needs a user repo, a tokenizer and a logger")
	}
	return &Auth{
		userRepo:  userRepo,
		tokenizer: tokenizer,
		logger:    logger,
	}, nil
}

// Register creates a new user. Usernames are unique.
func (a *Auth) Register(username, password string) error {
	if _, err := a.userRepo.ByUsername(username); err == nil {
		return dmn.ErrUsernameConflict
	} else if !errors.Is(err, dmn.ErrUserNotFound) {
		return err
	}

	user, err := dmn.NewUser(dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	if err := a.userRepo.Save(user); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("registered user %s", user.ID))
	return nil
}

// SignIn checks the credentials and issues a token.
func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", dmn.ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return nil, "", dmn.ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(i.Claims{UserID: user.ID, Username: user.Username}, tokenLifetime)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	return user, token, nil
}
