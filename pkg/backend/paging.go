package backend

// Default paging values for admin listings.
const (
	DefaultPerPage = 50
	MaxPerPage     = 200
)

// Page selects a window of a listing. Pages start at 1.
type Page struct {
	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"`
}

// limitOffset returns the SQL limit and offset for p, applying defaults.
func (p Page) limitOffset() (int, int) {
	page, per := p.Page, p.PerPage
	if page < 1 {
		page = 1
	}
	if per < 1 {
		per = DefaultPerPage
	}
	if per > MaxPerPage {
		per = MaxPerPage
	}
	return per, (page - 1) * per
}
