package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comicverse/hub/internal/domain"
	"github.com/comicverse/hub/internal/service"
	apperrors "github.com/comicverse/hub/pkg/errors"
	"github.com/comicverse/hub/pkg/httputil"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service    *service.WishlistService
	storefront *service.StorefrontService
	logger     *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, storefront *service.StorefrontService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service:    svc,
		storefront: storefront,
		logger:     logger,
	}
}

// WishlistResponse lists the comics on the wishlist.
type WishlistResponse struct {
	Comics []domain.Comic `json:"comics"`
	Count  int            `json:"count"`
}

// MembershipResponse reports the wishlist state of one comic after a change.
type MembershipResponse struct {
	ComicID    string `json:"comic_id"`
	Wishlisted bool   `json:"wishlisted"`
	Changed    bool   `json:"changed"`
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	comics, err := h.service.Entries(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, WishlistResponse{Comics: comics, Count: len(comics)})
}

// AddItem handles PUT /api/v1/wishlist/{comicId}
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	comicID, ok := h.catalogComicID(w, r)
	if !ok {
		return
	}

	added, err := h.service.Add(r.Context(), comicID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, MembershipResponse{ComicID: comicID, Wishlisted: true, Changed: added})
}

// RemoveItem handles DELETE /api/v1/wishlist/{comicId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	comicID, ok := httputil.ParseComicID(w, chi.URLParam(r, "comicId"))
	if !ok {
		return
	}

	removed, err := h.service.Remove(r.Context(), comicID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, MembershipResponse{ComicID: comicID, Wishlisted: false, Changed: removed})
}

// Toggle handles POST /api/v1/wishlist/{comicId}/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	comicID, ok := h.catalogComicID(w, r)
	if !ok {
		return
	}

	present, err := h.service.Toggle(r.Context(), comicID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, MembershipResponse{ComicID: comicID, Wishlisted: present, Changed: true})
}

// catalogComicID reads the comicId path parameter and checks that it names a
// catalog comic. Removal skips the catalog check so stale ids can be dropped.
func (h *WishlistHandler) catalogComicID(w http.ResponseWriter, r *http.Request) (string, bool) {
	comicID, ok := httputil.ParseComicID(w, chi.URLParam(r, "comicId"))
	if !ok {
		return "", false
	}
	if _, found := h.storefront.Comic(comicID); !found {
		httputil.WriteError(w, r, apperrors.NotFound("comic", comicID), h.logger)
		return "", false
	}
	return comicID, true
}
