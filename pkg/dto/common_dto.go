package dto

// PageQuery is the pagination fragment shared by every listing
// endpoint. Values are clamped downstream; binding only rejects
// negatives.
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type ListQuery struct {
	PageQuery
	Search  string `form:"query"`
	SortBy  string `form:"sort_by"`
	SortDir string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}
