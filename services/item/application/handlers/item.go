package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/boundedstr/services/item/domain/models"
)

// ItemResponse is the JSON representation of an Item. Bounded names encode
// as plain JSON strings.
type ItemResponse struct {
	ID        uuid.UUID        `json:"id"`
	OrgID     uuid.UUID        `json:"org_id"`
	Name      models.ItemName  `json:"name"`
	OwnerName models.OwnerName `json:"owner_name"`
	CreatedAt time.Time        `json:"created_at"`
}

func newItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		OrgID:     item.OrgID,
		Name:      item.Name,
		OwnerName: item.Owner,
		CreatedAt: item.CreatedAt,
	}
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

var (
	errInvalidOrgID  = errors.New("invalid org id")
	errInvalidItemID = errors.New("invalid item id")
)

// orgIDParam reads the {orgID} URL parameter. The nil UUID is rejected.
func orgIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errInvalidOrgID
	}
	return id, nil
}

// itemIDParams reads the {orgID} and {id} URL parameters.
func itemIDParams(r *http.Request) (orgID, id uuid.UUID, err error) {
	if orgID, err = orgIDParam(r); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if id, err = uuid.Parse(chi.URLParam(r, "id")); err != nil {
		return uuid.Nil, uuid.Nil, errInvalidItemID
	}
	return orgID, id, nil
}
