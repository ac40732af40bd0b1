package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sweetshop/sweetshop/application/port/outbound"
)

// parseSweetFilter builds the catalog search filter from the optional
// q, minPrice and maxPrice query parameters. An absent parameter omits
// that clause entirely; there are no default bounds.
func parseSweetFilter(r *http.Request) (outbound.SweetFilter, error) {
	filter := outbound.SweetFilter{
		Query: r.URL.Query().Get("q"),
	}

	if raw := r.URL.Query().Get("minPrice"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return outbound.SweetFilter{}, fmt.Errorf("invalid minPrice %q", raw)
		}
		filter.MinPrice = &min
	}

	if raw := r.URL.Query().Get("maxPrice"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return outbound.SweetFilter{}, fmt.Errorf("invalid maxPrice %q", raw)
		}
		filter.MaxPrice = &max
	}

	return filter, nil
}
