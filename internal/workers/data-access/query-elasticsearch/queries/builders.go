package queries

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	QueryTypeVerifiedVendors = "verified_vendors"
	QueryTypeVendorSearch    = "vendor_search"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
	ErrIndexNotFound    = errors.New("index not found")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ElasticsearchQuery defines the structure of a query request
type ElasticsearchQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	Pagination struct {
		From int
		Size int
	}
	// SearchAfter continues a verified_vendors scan after the given sort values.
	SearchAfter []interface{}
}

// BuildQuery builds an Elasticsearch search request based on query type and filters
func BuildQuery(eq ElasticsearchQuery) (*esapi.SearchRequest, error) {
	if eq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch eq.QueryType {
	case QueryTypeVerifiedVendors:
		queryBody = buildVerifiedVendorsQuery(eq)
	case QueryTypeVendorSearch:
		queryBody = buildVendorSearchQuery(eq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, eq.QueryType)
	}

	body, err := json.Marshal(queryBody)
	if err != nil {
		return nil, err
	}

	size := eq.Pagination.Size
	req := esapi.SearchRequest{
		Index: []string{eq.Index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	if len(eq.SearchAfter) == 0 {
		from := eq.Pagination.From
		req.From = &from
	}

	return &req, nil
}

// buildVerifiedVendorsQuery lists verified vendors in id order so the scan can
// page with search_after.
func buildVerifiedVendorsQuery(eq ElasticsearchQuery) map[string]interface{} {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"verified": true}},
				},
			},
		},
		"sort": []map[string]interface{}{{"id": "asc"}},
	}
	if len(eq.SearchAfter) > 0 {
		query["search_after"] = eq.SearchAfter
	}
	return query
}

// buildVendorSearchQuery builds a free-text vendor lookup with optional
// service, location and verification filters.
func buildVendorSearchQuery(eq ElasticsearchQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := eq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"businessName^3", "services^2", "description"},
				"type":   "best_fields",
			},
		})
	}

	if services := stringList(eq.Filters["services"]); len(services) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"services": services},
		})
	}

	if location, ok := eq.Filters["location"].(string); ok && location != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"match": map[string]interface{}{"location": location},
		})
	}

	if verified, ok := eq.Filters["verified"].(bool); ok {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"verified": verified},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}

	if sortBy, ok := eq.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "rating":
			query["sort"] = []map[string]interface{}{{"rating": "desc"}, {"id": "asc"}}
		case "businessName":
			query["sort"] = []map[string]interface{}{{"businessName.keyword": "asc"}}
		}
	}

	return query
}

func stringList(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
