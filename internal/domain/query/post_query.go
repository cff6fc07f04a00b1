// Package query composes the pagination, ordering and search rules that the
// post repository turns into SQL.
package query

import (
	"strings"

	domainerrors "blog/internal/domain/errors"
)

// Defaults applied when the caller leaves page or limit out, or sends garbage.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// SortOrder names a supported post ordering.
type SortOrder int

const (
	// NewestFirst orders posts by creation time, latest first.
	NewestFirst SortOrder = iota
	// OldestFirst orders posts by creation time, earliest first.
	OldestFirst
)

// Pagination is a normalised page window.
type Pagination struct {
	Page  int
	Limit int
	Skip  int
}

// Paginate coerces page and limit to positive integers and derives the offset.
// A limit above maxLimit is clamped; maxLimit <= 0 disables the clamp.
func Paginate(page, limit, maxLimit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	return Pagination{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// PageCount returns how many pages of size limit cover total items.
func PageCount(total int64, limit int) int64 {
	if limit < 1 || total <= 0 {
		return 0
	}

	return (total + int64(limit) - 1) / int64(limit)
}

// SearchPredicate matches posts whose title or text contains Term, ignoring case.
type SearchPredicate struct {
	Term string
}

// Search builds the predicate for a free-text query. Blank queries are a caller error.
func Search(raw string) (*SearchPredicate, error) {
	term := strings.TrimSpace(raw)
	if term == "" {
		return nil, domainerrors.ErrEmptyQuery
	}

	return &SearchPredicate{Term: term}, nil
}

// LikeEscape is the escape character used in LikePattern.
const LikeEscape = `\`

// LikePattern returns a lower-cased LIKE pattern with the term's wildcards escaped,
// so "50%" matches the literal text rather than everything starting with 50.
func (p *SearchPredicate) LikePattern() string {
	replacer := strings.NewReplacer(
		LikeEscape, LikeEscape+LikeEscape,
		"%", LikeEscape+"%",
		"_", LikeEscape+"_",
	)

	return "%" + replacer.Replace(strings.ToLower(p.Term)) + "%"
}

// PostQuery is the single query contract consumed by the post repository.
// A nil Pagination returns every match; a nil Search matches every post.
type PostQuery struct {
	Pagination *Pagination
	Search     *SearchPredicate
	Order      SortOrder
}

// ListQuery is the listing used by the home page: newest first, one page.
func ListQuery(p Pagination) PostQuery {
	return PostQuery{
		Pagination: &p,
		Order:      NewestFirst,
	}
}

// SearchQuery returns every post matching pred, newest first.
func SearchQuery(pred *SearchPredicate) PostQuery {
	return PostQuery{
		Search: pred,
		Order:  NewestFirst,
	}
}
