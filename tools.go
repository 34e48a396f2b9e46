//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/matryer/moq generates the *_mock_test.go service mocks (go run)
// - github.com/pressly/goose/v3/cmd/goose runs migrations outside cmd/migrate
