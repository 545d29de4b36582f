package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/codex-minhex/internal/core/user"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const internalErrorMessage = "internal error"

// toStatusError はドメインエラーを gRPC ステータスに変換します。
// 分類できないエラーの詳細はクライアントに返しません。
func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, user.ErrInvalidUserData):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, internalErrorMessage)
	}
}
