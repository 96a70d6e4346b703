package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comicverse/hub/internal/domain"
	"github.com/comicverse/hub/internal/query"
	"github.com/comicverse/hub/internal/service"
	"github.com/comicverse/hub/pkg/httputil"
	"github.com/comicverse/hub/pkg/pagination"
)

// CatalogHandler serves the read-only storefront pages.
type CatalogHandler struct {
	storefront *service.StorefrontService
	logger     *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(storefront *service.StorefrontService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		storefront: storefront,
		logger:     logger,
	}
}

// ListComicsResponse is one page of a browse listing.
type ListComicsResponse struct {
	Comics       []domain.Comic `json:"comics"`
	Criteria     query.Criteria `json:"criteria"`
	Sort         query.SortKey  `json:"sort"`
	Total        int            `json:"total"`
	CatalogTotal int            `json:"catalog_total"`
	Message      string         `json:"message"`
	Page         int            `json:"page"`
	PerPage      int            `json:"per_page"`
	TotalPages   int            `json:"total_pages"`
	HasNext      bool           `json:"has_next"`
	HasPrev      bool           `json:"has_prev"`
}

// Home handles GET /api/v1/home
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.storefront.Home())
}

// ListComics handles GET /api/v1/comics
func (h *CatalogHandler) ListComics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort := query.DefaultSort
	if v := q.Get("sort"); v != "" {
		sort = query.SortKey(v)
		if !sort.Valid() {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "invalid sort: " + v},
			})
			return
		}
	}

	criteria := query.Criteria{
		Search:    q.Get("q"),
		Publisher: q.Get("publisher"),
		Genre:     q.Get("genre"),
		Character: q.Get("character"),
	}

	result := h.storefront.Browse(criteria, sort)
	page := pagination.Slice(result.Comics, pagination.FromRequest(r))

	httputil.WriteData(w, http.StatusOK, ListComicsResponse{
		Comics:       page.Data,
		Criteria:     result.Criteria,
		Sort:         result.Sort,
		Total:        result.Total,
		CatalogTotal: result.CatalogTotal,
		Message:      result.Message,
		Page:         page.Page,
		PerPage:      page.PerPage,
		TotalPages:   page.TotalPages,
		HasNext:      page.HasNext,
		HasPrev:      page.HasPrev,
	})
}

// GetComic handles GET /api/v1/comics/{id}
func (h *CatalogHandler) GetComic(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseComicID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	detail, err := h.storefront.Detail(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, detail)
}

// ListPublishers handles GET /api/v1/publishers
func (h *CatalogHandler) ListPublishers(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.storefront.Publishers())
}

// ListGenres handles GET /api/v1/genres
func (h *CatalogHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.storefront.Genres())
}

// GetBadges handles GET /api/v1/badges
func (h *CatalogHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.storefront.Badges(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, badges)
}
