package transport

// Envelope is the uniform wrapper every endpoint responds with.
type Envelope struct {
	Status     string      `json:"status"`
	Code       int         `json:"code"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Results    *int        `json:"results,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
}

type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	Limit         int  `json:"limit"`
	NumberOfPages int  `json:"numberOfPages"`
	Next          *int `json:"next,omitempty"`
}

func NewPagination(page, limit, numberOfPages int) *Pagination {
	p := &Pagination{CurrentPage: page, Limit: limit, NumberOfPages: numberOfPages}
	if page < numberOfPages {
		next := page + 1
		p.Next = &next
	}
	return p
}
