package handlers

import (
	"net/http"

	"github.com/ghuser/boundedstr/pkg/errhttp"
	"github.com/ghuser/boundedstr/pkg/httpx"
	appsvcs "github.com/ghuser/boundedstr/services/item/application/services"
)

// GetItemHandler handles GET /orgs/{orgID}/item/{id}.
type GetItemHandler struct {
	svc *appsvcs.Services
}

func NewGetItemHandler(svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{svc: svc}
}

func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, id, err := itemIDParams(r)
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.svc.Item.GetByID(r.Context(), orgID, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, newItemResponse(item))
}
