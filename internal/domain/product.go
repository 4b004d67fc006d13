package domain

// Seller is the summary of a product's owner shown on the detail screen.
type Seller struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Product is a listing in the catalog. Images keeps server order; the first
// entry is the primary/thumbnail image. Views is maintained by the server
// and only ever grows.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Views       int      `json:"views"`
	Seller      Seller   `json:"seller"`
}

// ProductFilters narrows a product listing. Zero-value string fields mean
// "no filter". MinPrice and MaxPrice are pointers so that a bound of 0 is
// distinguishable from an absent bound; absent fields are omitted from the
// query entirely. An inverted range is sent as-is, the server just returns
// an empty set.
type ProductFilters struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// IsZero reports whether no filter field is set.
func (f ProductFilters) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}
