package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
	"github.com/wadjakorntonsri/minilink/pkg/ports"
)

type LinkHandler struct {
	service ports.LinkService
	logger  zerolog.Logger
}

func NewLinkHandler(service ports.LinkService, logger zerolog.Logger) *LinkHandler {
	return &LinkHandler{service: service, logger: logger}
}

type linkRequest struct {
	DestinationURL string     `json:"destinationUrl"`
	Comments       string     `json:"comments,omitempty"`
	LinkExpiration bool       `json:"linkExpiration,omitempty"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
}

func (req *linkRequest) input() domain.LinkInput {
	return domain.LinkInput{
		DestinationURL: req.DestinationURL,
		Comments:       req.Comments,
		LinkExpiration: req.LinkExpiration,
		ExpirationDate: req.ExpirationDate,
	}
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "This action is not allowed")
		return
	}

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.service.Create(r.Context(), userID, req.input())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("create link failed")
		writeError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Link created successfully",
		"link":    link,
	})
}

func (h *LinkHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("shortUrlCode")

	destination, err := h.service.Resolve(r.Context(), code, r.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Short URL not found.")
		case errors.Is(err, domain.ErrExpired):
			writeError(w, http.StatusGone, "Link has expired.")
		default:
			h.logger.Error().Err(err).Str("code", code).Msg("redirect failed")
			writeError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		}
		return
	}

	http.Redirect(w, r, destination, http.StatusFound)
}

func (h *LinkHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "This action is not allowed")
		return
	}

	linkID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.service.Edit(r.Context(), userID, linkID, req.input())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Link not found or you do not have permission to edit it.")
		case errors.Is(err, domain.ErrExpired):
			writeError(w, http.StatusGone, "Link has expired.")
		default:
			h.logger.Error().Err(err).Int64("link_id", linkID).Msg("edit link failed")
			writeError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Link updated successfully.",
		"link":    link,
	})
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "This action is not allowed")
		return
	}

	linkID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, linkID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Link not found or you do not have permission to delete it.")
			return
		}
		h.logger.Error().Err(err).Int64("link_id", linkID).Msg("delete link failed")
		writeError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Link deleted successfully."})
}

func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "This action is not allowed")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.service.List(r.Context(), userID, page, limit)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("list links failed")
		writeError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Links retrieved successfully.",
		"links":       result.Links,
		"totalLinks":  result.TotalLinks,
		"totalPages":  result.TotalPages,
		"currentPage": result.Page,
		"limit":       result.Limit,
	})
}

func (h *LinkHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "This action is not allowed")
		return
	}

	linkID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	link, err := h.service.GetByID(r.Context(), userID, linkID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Link not found or you do not have permission to view it.")
			return
		}
		h.logger.Error().Err(err).Int64("link_id", linkID).Msg("get link failed")
		writeError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Link retrieved successfully.",
		"link":    link,
	})
}
