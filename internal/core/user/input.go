package user

import (
	"net/mail"
	"strings"
)

// CreateUserInput はユーザー作成時の入力です。
type CreateUserInput struct {
	Email string
	Name  string
}

// CreateUserOutput はユーザー作成結果です。
type CreateUserOutput struct {
	UserID string
}

// NormalizeCreateUserInput は境界（HTTP/gRPC）で入力を検証・正規化します。
// Service.CreateUser は正規化済みの入力を前提とし、再検証は行いません。
func NormalizeCreateUserInput(in CreateUserInput) (CreateUserInput, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return CreateUserInput{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CreateUserInput{}, ErrInvalidName
	}

	return CreateUserInput{Email: email, Name: name}, nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", ErrInvalidEmail
	}
	// "Name <a@b>" 形式は受け付けない
	if addr.Address != trimmed {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(addr.Address), nil
}
