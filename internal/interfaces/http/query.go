package http

import (
	"net/url"
	"strconv"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/report"
	"pftracker/internal/domain/transaction"
	"pftracker/internal/shared/apperror"
	"pftracker/internal/shared/civil"
)

func queryInt(q url.Values, key string, def int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperror.Validation(key + " must be an integer")
	}
	return n, nil
}

func queryID(q url.Values, key string) (*int64, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return nil, apperror.Validation(key + " must be a positive integer")
	}
	return &n, nil
}

func queryDate(q url.Values, key string) (*civil.Date, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	d, err := civil.Parse(v)
	if err != nil {
		return nil, apperror.Validation(key + " must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

func queryType(q url.Values) (*category.Type, error) {
	v := q.Get("type")
	if v == "" {
		return nil, nil
	}
	t, err := category.ParseType(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseRange(q url.Values) (report.Range, error) {
	start, err := queryDate(q, "start_date")
	if err != nil {
		return report.Range{}, err
	}
	end, err := queryDate(q, "end_date")
	if err != nil {
		return report.Range{}, err
	}
	return report.Range{StartDate: start, EndDate: end}, nil
}

func parseFilter(q url.Values) (transaction.Filter, error) {
	var f transaction.Filter
	var err error

	if f.Type, err = queryType(q); err != nil {
		return f, err
	}
	if f.CategoryID, err = queryID(q, "category_id"); err != nil {
		return f, err
	}
	rng, err := parseRange(q)
	if err != nil {
		return f, err
	}
	f.StartDate, f.EndDate = rng.StartDate, rng.EndDate

	return f, nil
}

func parseListParams(q url.Values) (transaction.ListParams, error) {
	filter, err := parseFilter(q)
	if err != nil {
		return transaction.ListParams{}, err
	}
	page, err := queryInt(q, "page", 1)
	if err != nil {
		return transaction.ListParams{}, err
	}
	pageSize, err := queryInt(q, "page_size", transaction.DefaultPageSize)
	if err != nil {
		return transaction.ListParams{}, err
	}
	return transaction.ListParams{Filter: filter, Page: page, PageSize: pageSize}, nil
}
