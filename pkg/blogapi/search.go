package blogapi

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/netdepviet/blogadmin/internal/constants"
)

// DefaultSearchKeys is used when a filter is created without explicit keys.
var DefaultSearchKeys = []string{"name"}

// FuzzyFilter narrows items to those whose indexed fields approximately match
// query, ordered best match first. Keys name struct fields by their json tag
// (falling back to the field name); non-string fields are skipped. An empty
// query returns all items unchanged.
func FuzzyFilter[T any](query string, items []T, keys ...string) []T {
	if len(items) == 0 {
		return []T{}
	}

	if strings.TrimSpace(query) == "" {
		return items
	}

	if len(keys) == 0 {
		keys = DefaultSearchKeys
	}

	type ranked struct {
		item T
		rank int
	}

	matches := make([]ranked, 0, len(items))

	for _, item := range items {
		best := -1

		for _, key := range keys {
			value, ok := stringField(item, key)
			if !ok {
				continue
			}

			rank := fuzzy.RankMatchNormalizedFold(query, value)
			if rank >= 0 && (best < 0 || rank < best) {
				best = rank
			}
		}

		if best >= 0 {
			matches = append(matches, ranked{item: item, rank: best})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	result := make([]T, 0, len(matches))
	for _, match := range matches {
		result = append(result, match.item)
	}

	return result
}

// stringField resolves a search key against an item. Keys match the json tag
// first, then the Go field name case-insensitively. Embedded structs are
// searched recursively.
func stringField(item interface{}, key string) (string, bool) {
	value := reflect.ValueOf(item)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", false
		}

		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return "", false
	}

	structType := value.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if nested, ok := stringField(value.Field(i).Interface(), key); ok {
				return nested, true
			}

			continue
		}

		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = field.Name
		}

		if !strings.EqualFold(name, key) {
			continue
		}

		if field.Type.Kind() == reflect.String {
			return value.Field(i).String(), true
		}

		return "", false
	}

	return "", false
}

// DebouncedFilter delays filtering until input has been quiet for a full
// window, so a burst of keystrokes produces a single delivery carrying only
// the final query.
type DebouncedFilter[T any] struct {
	debounced func(func())
	keys      []string
}

// NewDebouncedFilter creates a filter with the given quiet window. A
// non-positive window falls back to the default of one second.
func NewDebouncedFilter[T any](window time.Duration, keys ...string) *DebouncedFilter[T] {
	if window <= 0 {
		window = constants.DefaultDebounceWindow
	}

	return &DebouncedFilter[T]{
		debounced: debounce.New(window),
		keys:      keys,
	}
}

// Filter schedules a filtered delivery of items for query. Calls arriving
// inside the window supersede earlier ones; only the last call's result is
// delivered.
func (d *DebouncedFilter[T]) Filter(query string, items []T, deliver func([]T)) {
	d.debounced(func() {
		deliver(FuzzyFilter(query, items, d.keys...))
	})
}
