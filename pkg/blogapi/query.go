package blogapi

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// QueryParams is the free-form filter/pagination map for list endpoints.
// Keys with empty values are omitted from the serialized query string.
type QueryParams struct {
	Page    int
	PerPage int
	OrderBy string
	Search  string
	Filters map[string]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string]string),
	}
}

// WithPage sets the page number.
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithPerPage sets the page size.
func (q *QueryParams) WithPerPage(perPage int) *QueryParams {
	q.PerPage = perPage

	return q
}

// WithOrderBy sets the ordering field (prefix with "-" for descending).
func (q *QueryParams) WithOrderBy(orderBy string) *QueryParams {
	q.OrderBy = orderBy

	return q
}

// WithSearch sets the server-side search term.
func (q *QueryParams) WithSearch(search string) *QueryParams {
	q.Search = search

	return q
}

// WithFilter sets a filter value, replacing any previous value for the key.
func (q *QueryParams) WithFilter(key, value string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}

	q.Filters[key] = value

	return q
}

// ToValues serializes the params to url.Values. Zero pagination values and
// empty strings are omitted entirely.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.PerPage > 0 {
		values.Set("perPage", strconv.Itoa(q.PerPage))
	}

	if q.OrderBy != "" {
		values.Set("orderBy", q.OrderBy)
	}

	if q.Search != "" {
		values.Set("search", q.Search)
	}

	for key, value := range q.Filters {
		if value == "" {
			continue
		}

		values.Set(key, value)
	}

	return values
}

// CacheKeyPart renders the params as a stable, sorted string so that
// structurally equal params always produce the same cache key.
func (q *QueryParams) CacheKeyPart() string {
	values := q.ToValues()
	if len(values) == 0 {
		return ""
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+values.Get(key))
	}

	return strings.Join(parts, "&")
}
