package response

type SearchPagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type SearchResponse struct {
	Results        []map[string]any            `json:"results"`
	Pagination     SearchPagination            `json:"pagination"`
	Facets         map[string]map[string]int64 `json:"facets"`
	ProcessingTime int64                       `json:"processingTime"`
}
