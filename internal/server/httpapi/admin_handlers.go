package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/coursehub/internal/server/authz"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.admin.ListAccounts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	views := make([]models.AccountView, 0, len(list))
	for _, a := range list {
		views = append(views, a.View())
	}
	writeJSON(w, http.StatusOK, views)
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=student instructor admin"`
}

func (h *handler) changeRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := h.decode(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	acc, err := h.admin.ChangeRole(r.Context(), authz.FromContext(r.Context()), chi.URLParam(r, "id"), req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc.View())
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteAccount(r.Context(), authz.FromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type analyticsResponse struct {
	TotalUsers       int `json:"totalUsers"`
	TotalStudents    int `json:"totalStudents"`
	TotalInstructors int `json:"totalInstructors"`
	TotalAdmins      int `json:"totalAdmins"`
}

func (h *handler) analytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.admin.Analytics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analyticsResponse{
		TotalUsers:       a.TotalUsers,
		TotalStudents:    a.TotalStudents,
		TotalInstructors: a.TotalInstructors,
		TotalAdmins:      a.TotalAdmins,
	})
}
