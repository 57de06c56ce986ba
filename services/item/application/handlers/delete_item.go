package handlers

import (
	"net/http"

	"github.com/ghuser/boundedstr/pkg/errhttp"
	"github.com/ghuser/boundedstr/pkg/httpx"
	appsvcs "github.com/ghuser/boundedstr/services/item/application/services"
)

// DeleteItemHandler handles DELETE /orgs/{orgID}/item/{id}. Answers 204 on success.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, id, err := itemIDParams(r)
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.Item.Delete(r.Context(), orgID, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
