package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/server/authz"
)

type avatarUploadRequest struct {
	ContentType string `json:"contentType" validate:"required,max=100"`
}

type avatarUploadResponse struct {
	Key         string    `json:"key"`
	UploadURL   string    `json:"uploadUrl"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (h *handler) avatarUploadURL(w http.ResponseWriter, r *http.Request) {
	var req avatarUploadRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, "avatar_upload", err)
		return
	}

	up, err := h.avatars.CreateUpload(r.Context(), authz.FromContext(r.Context()).AccountID, req.ContentType)
	if err != nil {
		h.fail(w, "avatar_upload", err)
		return
	}
	h.metrics.Record("avatar_upload", "ok")
	writeJSON(w, http.StatusOK, avatarUploadResponse{
		Key:         up.Key,
		UploadURL:   up.UploadURL,
		ContentType: up.ContentType,
		ExpiresAt:   up.ExpiresAt,
	})
}

type avatarConfirmRequest struct {
	Key string `json:"key" validate:"required,max=512"`
}

func (h *handler) confirmAvatar(w http.ResponseWriter, r *http.Request) {
	var req avatarConfirmRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, "avatar_confirm", err)
		return
	}

	acc, err := h.avatars.Confirm(r.Context(), authz.FromContext(r.Context()).AccountID, req.Key)
	if err != nil {
		h.fail(w, "avatar_confirm", err)
		return
	}
	h.metrics.Record("avatar_confirm", "ok")
	writeJSON(w, http.StatusOK, acc.View())
}

type avatarLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *handler) avatarURL(w http.ResponseWriter, r *http.Request) {
	link, err := h.avatars.DownloadURL(r.Context(), authz.FromContext(r.Context()).AccountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avatarLinkResponse{URL: link.URL, ExpiresAt: link.ExpiresAt})
}

func (h *handler) removeAvatar(w http.ResponseWriter, r *http.Request) {
	acc, err := h.avatars.Remove(r.Context(), authz.FromContext(r.Context()).AccountID)
	if err != nil {
		h.fail(w, "avatar_remove", err)
		return
	}
	h.metrics.Record("avatar_remove", "ok")
	writeJSON(w, http.StatusOK, acc.View())
}
