package handlers

import (
	"net/http"

	"github.com/ghuser/boundedstr/pkg/errhttp"
	"github.com/ghuser/boundedstr/pkg/httpx"
	pkgvalidator "github.com/ghuser/boundedstr/pkg/validator"
	appsvcs "github.com/ghuser/boundedstr/services/item/application/services"
	"github.com/ghuser/boundedstr/services/item/domain/models"
)

// CreateItemRequest is the request body for POST /orgs/{orgID}/item.
// Both names are length-checked while the body is decoded; the "bounded" tag
// rejects fields missing from the payload.
type CreateItemRequest struct {
	Name      models.ItemName  `json:"name"       validate:"bounded"`
	OwnerName models.OwnerName `json:"owner_name" validate:"bounded"`
}

// PostItemHandler handles POST /orgs/{orgID}/item requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new item.
//
//	201 ItemResponse
//	400 malformed JSON, non-string name, bad org id
//	422 name or owner_name outside its length range
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r, pkgvalidator.WithRejections(h.svc.Item.Rejections()))
	if !ok {
		return
	}

	item, err := h.svc.Item.Create(r.Context(), orgID, req.Name, req.OwnerName)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, newItemResponse(item))
}
