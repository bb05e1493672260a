package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any page can request.
	MaxLimit = 100
)

// Params holds page-number pagination inputs from controllers.
type Params struct {
	Page  int
	Limit int
}

// Meta describes the page that was actually served.
type Meta struct {
	Count int `json:"count"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the requested page to 1 or greater.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// Offset converts the normalized page/limit pair into a row offset.
func (p Params) Offset() int {
	return (NormalizePage(p.Page) - 1) * NormalizeLimit(p.Limit)
}

// MetaFor derives page metadata from a total row count. Totals arrive as
// int64 because that is what gorm's Count writes.
func MetaFor(total int64, p Params) Meta {
	count := int(total)
	limit := NormalizeLimit(p.Limit)
	pages := count / limit
	if count%limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return Meta{
		Count: count,
		Page:  NormalizePage(p.Page),
		Pages: pages,
		Limit: limit,
	}
}
