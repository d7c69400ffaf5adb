package logic

import "errors"

var (
	// ErrNotFound covers missing users, leaderboard rows and the like.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned by signup for an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials covers unknown user and password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrFederatedOnly is returned when a password login hits an account
	// that has no local password credential.
	ErrFederatedOnly = errors.New("account uses federated sign-in")
	// ErrEmailRequired is returned when a federated profile has no email claim.
	ErrEmailRequired = errors.New("email is required for federated sign-in")
)
