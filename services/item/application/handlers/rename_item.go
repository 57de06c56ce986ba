package handlers

import (
	"net/http"

	"github.com/ghuser/boundedstr/pkg/errhttp"
	"github.com/ghuser/boundedstr/pkg/httpx"
	pkgvalidator "github.com/ghuser/boundedstr/pkg/validator"
	appsvcs "github.com/ghuser/boundedstr/services/item/application/services"
	"github.com/ghuser/boundedstr/services/item/domain/models"
)

// RenameItemRequest is the request body for PUT /orgs/{orgID}/item/{id}/name.
type RenameItemRequest struct {
	Name models.ItemName `json:"name" validate:"bounded"`
}

// RenameItemHandler replaces an item's name. Answers 204 on success.
type RenameItemHandler struct {
	svc *appsvcs.Services
}

func NewRenameItemHandler(svc *appsvcs.Services) *RenameItemHandler {
	return &RenameItemHandler{svc: svc}
}

func (h *RenameItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, id, err := itemIDParams(r)
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[RenameItemRequest](w, r, pkgvalidator.WithRejections(h.svc.Item.Rejections()))
	if !ok {
		return
	}

	if err := h.svc.Item.Rename(r.Context(), orgID, id, req.Name); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
