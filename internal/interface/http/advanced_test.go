package handlers

import (
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/codetrail/bootcamp-api/internal/domain/repository"
)

func queryCtx(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/bootcamps?"+rawQuery, nil)
	return c
}

func findCond(conds []repository.Cond, field, op string) (repository.Cond, bool) {
	for _, cd := range conds {
		if cd.Field == field && cd.Op == op {
			return cd, true
		}
	}
	return repository.Cond{}, false
}

func TestParseListQueryOperators(t *testing.T) {
	c := queryCtx(t, "averageCost[lte]=10000&housing=true&careers[in]=Business,UI/UX")
	q := ParseListQuery(c)

	if cd, ok := findCond(q.Conds, "averageCost", "lte"); !ok || cd.Value != float64(10000) {
		t.Errorf("averageCost[lte] = %+v, ok=%v", cd, ok)
	}
	if cd, ok := findCond(q.Conds, "housing", "eq"); !ok || cd.Value != true {
		t.Errorf("bare field should be eq with coerced bool, got %+v ok=%v", cd, ok)
	}
	cd, ok := findCond(q.Conds, "careers", "in")
	if !ok {
		t.Fatal("careers[in] missing")
	}
	if want := []any{"Business", "UI/UX"}; !reflect.DeepEqual(cd.Value, want) {
		t.Errorf("careers[in] = %v, want %v", cd.Value, want)
	}
}

func TestParseListQueryDropsUnknownOperators(t *testing.T) {
	c := queryCtx(t, "averageCost[where]=1&name[regex]=.*&user[ne]=x")
	q := ParseListQuery(c)
	if len(q.Conds) != 0 {
		t.Errorf("unwhitelisted operators must be dropped, got %+v", q.Conds)
	}
}

func TestParseListQueryShaping(t *testing.T) {
	c := queryCtx(t, "select=name,description&sort=-averageCost&page=2&limit=10")
	q := ParseListQuery(c)

	if want := []string{"name", "description"}; !reflect.DeepEqual(q.Select, want) {
		t.Errorf("select = %v", q.Select)
	}
	if want := []string{"-averageCost"}; !reflect.DeepEqual(q.Sort, want) {
		t.Errorf("sort = %v", q.Sort)
	}
	if q.Page != 2 || q.Limit != 10 {
		t.Errorf("page/limit = %d/%d", q.Page, q.Limit)
	}
	if len(q.Conds) != 0 {
		t.Errorf("shaping params must not become filters: %+v", q.Conds)
	}
}

func TestPaginate(t *testing.T) {
	p := paginate(repository.ListQuery{Page: 2, Limit: 10}, 35)
	if p.Prev == nil || *p.Prev != 1 {
		t.Errorf("prev = %v", p.Prev)
	}
	if p.Next == nil || *p.Next != 3 {
		t.Errorf("next = %v", p.Next)
	}
	if p.Total != 35 {
		t.Errorf("total = %d", p.Total)
	}

	p = paginate(repository.ListQuery{}, 10)
	if p.Page != 1 || p.Limit != 25 {
		t.Errorf("defaults = %d/%d", p.Page, p.Limit)
	}
	if p.Next != nil || p.Prev != nil {
		t.Errorf("single page should have no next/prev: %+v", p)
	}

	p = paginate(repository.ListQuery{Limit: 500}, 1000)
	if p.Limit != 100 {
		t.Errorf("limit cap = %d, want 100", p.Limit)
	}
}
