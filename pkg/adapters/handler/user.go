package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
	"github.com/wadjakorntonsri/minilink/pkg/ports"
)

type UserHandler struct {
	service ports.UserService
	logger  zerolog.Logger
}

func NewUserHandler(service ports.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Register(r.Context(), req.Name, req.Email, req.Mobile, req.Password)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeMessage(w, http.StatusBadRequest, "User already exists")
		case errors.As(err, &verr):
			writeMessage(w, http.StatusBadRequest, verr.Reason)
		default:
			h.logger.Error().Err(err).Msg("register failed")
			writeMessage(w, http.StatusInternalServerError, "Error in creating user or dashboard")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "User and dashboard created successfully",
		"token":   result.Token,
		"name":    result.Name,
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			writeMessage(w, http.StatusBadRequest, "Wrong username or password")
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "This action is not allowed")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	emailChanged, err := h.service.Update(r.Context(), userID, req.Name, req.Email, req.Mobile)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeMessage(w, http.StatusBadRequest, "Email already exists")
		default:
			h.logger.Error().Err(err).Int64("user_id", userID).Msg("update user failed")
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	if emailChanged {
		writeMessage(w, http.StatusOK, "Email updated. Please log in again.")
		return
	}
	writeMessage(w, http.StatusOK, "User updated successfully.")
}

func (h *UserHandler) GetName(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "This action is not allowed")
		return
	}

	name, err := h.service.GetName(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("get username failed")
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "This action is not allowed")
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("delete user failed")
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}
