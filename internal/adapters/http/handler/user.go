package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ogurasousui/codex-minhex/internal/core/user"
)

const maxRequestBodyBytes = 1 << 20

// UserHandler はユーザー関連の HTTP エンドポイントです。
type UserHandler struct {
	Base
	users  user.UseCase
	logger *slog.Logger
}

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type createUserResponse struct {
	UserID string `json:"user_id"`
}

// NewUserHandler は UserHandler を生成します。
func NewUserHandler(users user.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// CreateUser は POST /api/v1/users を処理します。
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		h.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := user.NormalizeCreateUserInput(user.CreateUserInput{Email: req.Email, Name: req.Name})
	if err != nil {
		h.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.users.CreateUser(r.Context(), in)
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}

	h.RespondWithJSON(w, http.StatusCreated, createUserResponse{UserID: out.UserID})
}

func (h *UserHandler) respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		h.RespondWithError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrInvalidUserData):
		h.RespondWithError(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "create user failed", slog.String("error", err.Error()))
		h.RespondWithError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
