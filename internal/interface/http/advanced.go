package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codetrail/bootcamp-api/internal/domain/repository"
)

// reserved query params consumed by pagination/shaping rather than filtering.
var reservedParams = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// allowedOps is the whitelist of comparison operators accepted from the
// query string. Anything else is dropped, never forwarded to the store.
var allowedOps = map[string]bool{
	"eq":  true,
	"gt":  true,
	"gte": true,
	"lt":  true,
	"lte": true,
	"in":  true,
}

// ParseListQuery turns query parameters into a ListQuery. Filters use the
// field[op]=value form (averageCost[lte]=10000); a bare field=value means
// equality. Values are coerced to number or bool when they parse as one.
func ParseListQuery(c *gin.Context) repository.ListQuery {
	q := repository.ListQuery{
		Select: splitCSV(c.Query("select")),
		Sort:   splitCSV(c.Query("sort")),
	}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		q.Page = n
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		q.Limit = n
	}

	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		field, op := splitFilterKey(key)
		if !allowedOps[op] {
			continue
		}
		raw := values[0]
		var value any
		if op == "in" {
			parts := splitCSV(raw)
			coerced := make([]any, 0, len(parts))
			for _, p := range parts {
				coerced = append(coerced, coerceValue(p))
			}
			value = coerced
		} else {
			value = coerceValue(raw)
		}
		q.Conds = append(q.Conds, repository.Cond{Field: field, Op: op, Value: value})
	}
	return q
}

// splitFilterKey parses "field[op]" into its parts; a key with no bracket is
// an equality filter.
func splitFilterKey(key string) (field, op string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, "eq"
	}
	return key[:open], key[open+1 : len(key)-1]
}

func coerceValue(s string) any {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// pagination is the meta block attached to list responses.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Next  *int  `json:"next,omitempty"`
	Prev  *int  `json:"prev,omitempty"`
}

func paginate(q repository.ListQuery, total int64) pagination {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}
	p := pagination{Page: page, Limit: limit, Total: total}
	if int64(page)*int64(limit) < total {
		next := page + 1
		p.Next = &next
	}
	if page > 1 {
		prev := page - 1
		p.Prev = &prev
	}
	return p
}
