package service

import "errors"

// Sentinel errors mapped to HTTP responses by the controllers.
var (
	// ErrCloudDisabled is returned by account and feedback operations when
	// Postgres was unreachable at startup and the server runs offline.
	ErrCloudDisabled = errors.New("cloud features are disabled")

	ErrInvalidCode         = errors.New("invalid registration code")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrSurveyNotFound      = errors.New("survey not found")
	ErrInvalidRelationship = errors.New("unknown relationship group")
	ErrNotFound            = errors.New("not found")
)
