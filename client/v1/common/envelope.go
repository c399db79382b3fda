package common

type DataResponse[T any] struct {
	Data T `json:"data"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Take  int   `json:"take,omitempty"`
	Skip  int   `json:"skip,omitempty"`
}

type SearchResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
