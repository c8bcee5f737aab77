package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/service"
)

type ListingHandler struct {
	listingSvc service.ListingService
}

func NewListingHandler(listingSvc service.ListingService) *ListingHandler {
	return &ListingHandler{listingSvc: listingSvc}
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var listing domain.Listing
	if !decodeBody(w, r, &listing) {
		return
	}
	if err := h.listingSvc.CreateListing(r.Context(), actorFrom(r), &listing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

type listingResponse struct {
	Listing   *domain.Listing `json:"listing"`
	Available bool            `json:"available"`
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid listing id"})
		return
	}
	listing, available, err := h.listingSvc.GetListing(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listingResponse{Listing: listing, Available: available})
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid listing id"})
		return
	}
	var listing domain.Listing
	if !decodeBody(w, r, &listing) {
		return
	}
	listing.ID = id
	if err := h.listingSvc.UpdateListing(r.Context(), actorFrom(r), &listing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	listings, total, err := h.listingSvc.ListMyListings(r.Context(), actorFrom(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: listings, Total: total, Page: page})
}

func (h *ListingHandler) Browse(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	listings, total, err := h.listingSvc.BrowseListings(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: listings, Total: total, Page: page})
}

type clearApplicationsResponse struct {
	Cleared int64 `json:"cleared"`
}

func (h *ListingHandler) ClearApplications(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid listing id"})
		return
	}
	cleared, err := h.listingSvc.ClearApplications(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clearApplicationsResponse{Cleared: cleared})
}

func (h *ListingHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid listing id"})
		return
	}
	var img domain.ListingImage
	if !decodeBody(w, r, &img) {
		return
	}
	img.ListingID = id
	if err := h.listingSvc.AddImage(r.Context(), actorFrom(r), &img); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (h *ListingHandler) GetImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid listing id"})
		return
	}
	images, err := h.listingSvc.GetImages(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}
