package service

import "errors"

// Every failure a handler can see is one of these sentinels or an internal
// error whose text never reaches the client.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
)
