package patreonapi

type Links struct {
	// Next is an absolute url to the following page, empty on the last page.
	Next string `json:"next"`
}

type Meta struct {
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	// Total is the number of members in the listing, across all pages and
	// regardless of patron status.
	Total int `json:"total"`
}
