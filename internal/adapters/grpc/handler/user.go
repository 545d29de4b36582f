package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/ogurasousui/codex-minhex/internal/adapters/grpc/userv1"
	"github.com/ogurasousui/codex-minhex/internal/core/user"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// UserGrpcHandler は UserService の gRPC 実装です。
type UserGrpcHandler struct {
	svc    user.UseCase
	logger *slog.Logger
}

var _ userv1.UserServiceServer = (*UserGrpcHandler)(nil)

// NewUserGrpcHandler は UserGrpcHandler を生成します。
func NewUserGrpcHandler(svc user.UseCase, logger *slog.Logger) *UserGrpcHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &UserGrpcHandler{svc: svc, logger: logger}
}

// CreateUser はユーザーを作成します。
func (h *UserGrpcHandler) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	email, err := stringField(req, userv1.FieldEmail)
	if err != nil {
		return nil, err
	}
	name, err := stringField(req, userv1.FieldName)
	if err != nil {
		return nil, err
	}

	in, err := user.NormalizeCreateUserInput(user.CreateUserInput{Email: email, Name: name})
	if err != nil {
		return nil, toStatusError(err)
	}

	out, err := h.svc.CreateUser(ctx, in)
	if err != nil {
		st := toStatusError(err)
		if status.Code(st) == codes.Internal {
			h.logger.ErrorContext(ctx, "create user failed", slog.String("error", err.Error()))
		}
		return nil, st
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		userv1.FieldUserID: structpb.NewStringValue(out.UserID),
	}}, nil
}

func stringField(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", key)
	}
	return s.StringValue, nil
}
