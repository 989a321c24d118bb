package handler

import (
	"net/http"

	"hospital-directory/internal/delivery/dto"
	"hospital-directory/internal/usecase"
	"hospital-directory/pkg/response"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUsecase
}

func NewSearchHandler(searchUsecase usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{
		searchUsecase: searchUsecase,
	}
}

// Search handles directory search
// @Summary Search doctors and hospitals
// @Description Case-insensitive substring search over the directory datasets
// @Tags Search
// @Produce json
// @Param query query string false "Free-text query"
// @Param filter query string false "all, doctors or hospitals"
// @Success 200 {object} dto.SearchResponse
// @Router /search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.SearchRequest{
		Query:  q.Get("query"),
		Filter: q.Get("filter"),
	}

	response.JSON(w, http.StatusOK, h.searchUsecase.Search(r.Context(), &req))
}
