package handler

import (
	"github.com/gin-gonic/gin"

	searchService "github.com/cliptube/backend/internal/modules/search/service"
	"github.com/cliptube/backend/pkg/dto"
	"github.com/cliptube/backend/pkg/query"
	"github.com/cliptube/backend/pkg/response"
)

type SearchHandler struct {
	searchService searchService.SearchService
}

func NewSearchHandler(svc searchService.SearchService) *SearchHandler {
	return &SearchHandler{searchService: svc}
}

// Videos runs a full-text search over the published video index and
// wraps the hits in the same page shape the listings use.
func (h *SearchHandler) Videos(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	page, pageSize := query.Spec{Page: q.Page, PageSize: q.PageSize}.Clamp()

	hits, total, err := h.searchService.SearchVideos(q.Search, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	result := query.Page[searchService.VideoHit]{
		Items: hits,
		Meta: query.Meta{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			PageSize:    pageSize,
			HasMatches:  total > 0,
		},
	}

	response.OK(c, result, "search results retrieved successfully")
}
