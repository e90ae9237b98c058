// Package services contains application services for the EventHub client.
// This file defines the authentication service: register, sign in, sign out
// and the liveness probe.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eventhub/internal/client/client"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/common"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: validate the credentials and create an account on the server.
//   - Login: open a session; the adapter persists it and announces it.
//   - Logout: end the session everywhere it is shared.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// Passwords are taken as byte slices and wiped before returning.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client client.Client) AuthService {
	return &authService{client: client}
}

// Register checks the email and the password policy locally before asking
// the server to create the account.
func (a *authService) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if err := common.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := common.ValidatePassword(string(password)); err != nil {
		return nil, err
	}

	user, err := a.client.SignUp(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("sign up error: %w", err)
	}
	return user, nil
}

// Login signs in and returns the identity the session belongs to.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	session, err := a.client.SignIn(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("sign in error: %w", err)
	}
	return session.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.client.SignOut(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
