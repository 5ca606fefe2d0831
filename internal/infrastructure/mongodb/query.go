package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codetrail/bootcamp-api/internal/domain/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 25
	maxLimit     = 100
)

// buildFilter translates whitelisted conditions into a Mongo filter
// document. Conditions whose operator is not recognized are dropped;
// conditions on the same field merge into one operator document, so an
// equality is never clobbered by a later range bound.
func buildFilter(conds []repository.Cond) bson.M {
	filter := bson.M{}
	for _, c := range conds {
		switch c.Op {
		case "eq", "":
			if m, ok := filter[c.Field].(bson.M); ok {
				m["$eq"] = c.Value
			} else {
				filter[c.Field] = c.Value
			}
		case "gt", "gte", "lt", "lte":
			fieldOps(filter, c.Field)["$"+c.Op] = c.Value
		case "in":
			fieldOps(filter, c.Field)["$in"] = c.Value
		}
	}
	return filter
}

// fieldOps returns the operator document for a field, converting a bare
// equality value into an explicit $eq when one is already present.
func fieldOps(filter bson.M, field string) bson.M {
	if m, ok := filter[field].(bson.M); ok {
		return m
	}
	m := bson.M{}
	if prev, ok := filter[field]; ok {
		m["$eq"] = prev
	}
	filter[field] = m
	return m
}

// buildFindOptions translates select/sort/pagination into find options and
// returns the skip/limit actually applied.
func buildFindOptions(q repository.ListQuery) (*options.FindOptions, int, int) {
	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	if len(q.Select) > 0 {
		proj := bson.M{}
		for _, f := range q.Select {
			proj[f] = 1
		}
		opts.SetProjection(proj)
	}

	if len(q.Sort) > 0 {
		sort := bson.D{}
		for _, f := range q.Sort {
			if len(f) > 1 && f[0] == '-' {
				sort = append(sort, bson.E{Key: f[1:], Value: -1})
			} else if f != "" && f != "-" {
				sort = append(sort, bson.E{Key: f, Value: 1})
			}
		}
		opts.SetSort(sort)
	} else {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}

	return opts, page, limit
}
