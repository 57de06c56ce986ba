package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/boundedstr/pkg/errhttp"
	"github.com/ghuser/boundedstr/pkg/httpx"
	appsvcs "github.com/ghuser/boundedstr/services/item/application/services"
	"github.com/ghuser/boundedstr/services/item/domain/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListItemsResponse is a page of items plus the org's total item count.
type ListItemsResponse struct {
	Items  []ItemResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ListItemsHandler handles GET /orgs/{orgID}/item?limit=&offset=.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	opts, ok := pageOpts(r)
	if !ok {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid pagination"})
		return
	}

	items, total, err := h.svc.Item.List(r.Context(), orgID, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ListItemsResponse{
		Items:  make([]ItemResponse, 0, len(items)),
		Total:  total,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, newItemResponse(item))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// pageOpts parses limit (1..100, default 20) and offset (>= 0).
func pageOpts(r *http.Request) (repositories.QueryOpts, bool) {
	opts := repositories.QueryOpts{Limit: defaultPageSize}
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, false
		}
		opts.Limit = min(n, maxPageSize)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, false
		}
		opts.Offset = n
	}
	return opts, true
}
