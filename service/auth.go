package service

import (
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid username or password")

// Auth registers users and issues tokens for them.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	logger    i.Logger
}

// NewAuthService creates an Auth service.
func NewAuthService(ur i.UserRepo, t i.Tokenizer, logger i.Logger) (*Auth, error) {
	if ur == nil || t == nil || logger == nil {
		return nil, errors.New("auth service: missing dependency")
	}
	return &Auth{
		userRepo:  ur,
		tokenizer: t,
		logger:    logger,
	}, nil
}

// Register creates a new user account.
func (a *Auth) Register(username, password string) error {
	userConfig := dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	user, err := dmn.NewUser(userConfig)
	if err != nil {
		return err
	}

	if _, err := a.userRepo.ByUsername(username); err == nil {
		return dmn.ErrUsernameTaken
	} else if !errors.Is(err, dmn.ErrUserNotFound) {
		a.logger.Error(fmt.Sprintf("looking up user %s: %s", username, err))
		return err
	}

	if err := a.userRepo.Save(user); err != nil {
		a.logger.Error(fmt.Sprintf("saving user %s: %s", username, err))
		return err
	}

	a.logger.Info(fmt.Sprintf("user registered: ID=%s Username=%s", user.ID, user.Username))
	return nil
}

// SignIn checks the credentials and returns the user with a fresh token.
func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		a.logger.Warning(fmt.Sprintf("failed sign in for %s", username))
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, tokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
