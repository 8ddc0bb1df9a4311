package types

// PaginatedResponse wraps list results with their pagination window.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination describes the window applied to a list query.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// PaginationParams binds limit/offset query parameters.
type PaginationParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,gte=0"`
	Offset int `form:"offset,default=0" binding:"omitempty,gte=0"`
}
