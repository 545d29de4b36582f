package user

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound はユーザーが存在しない場合に返却されます。
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyExists はメールアドレス重複時に返却されます。
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	// ErrInvalidUserData は入力値が不正な場合に返却されます。
	ErrInvalidUserData = errors.New("invalid user data")
	// ErrInvalidEmail はメールアドレスが不正な場合に返却されます。
	ErrInvalidEmail = fmt.Errorf("%w: invalid email", ErrInvalidUserData)
	// ErrInvalidName は名前が不正な場合に返却されます。
	ErrInvalidName = fmt.Errorf("%w: invalid name", ErrInvalidUserData)
)
