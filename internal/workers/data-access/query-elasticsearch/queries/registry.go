// internal/workers/data-access/query-elasticsearch/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"eventhub-workers/internal/models"
)

// scanPageSize bounds each search_after page of a verified vendor scan.
const scanPageSize = 500

type QueryResult struct {
	Data      []models.Vendor
	TotalHits int64
	MaxScore  float64
	Took      int64
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			Source models.Vendor `json:"_source"`
			Sort   []interface{} `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

// Execute runs one page of a vendor query.
func Execute(ctx context.Context, esClient *elasticsearch.Client, eq ElasticsearchQuery) (*QueryResult, error) {
	eq.Pagination.Size = clampSize(eq.Pagination.Size)
	if eq.Pagination.From < 0 {
		eq.Pagination.From = 0
	}

	start := time.Now()
	resp, err := search(ctx, esClient, eq)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		Data:      make([]models.Vendor, 0, len(resp.Hits.Hits)),
		TotalHits: resp.Hits.Total.Value,
	}
	if resp.Hits.MaxScore != nil {
		result.MaxScore = *resp.Hits.MaxScore
	}
	for _, hit := range resp.Hits.Hits {
		result.Data = append(result.Data, hit.Source)
	}
	result.Took = time.Since(start).Milliseconds()
	return result, nil
}

// SearchVerifiedVendors scans every verified vendor in the index, paging with
// search_after on the id sort.
func SearchVerifiedVendors(ctx context.Context, esClient *elasticsearch.Client, index string) ([]models.Vendor, error) {
	eq := ElasticsearchQuery{Index: index, QueryType: QueryTypeVerifiedVendors}
	eq.Pagination.Size = scanPageSize

	vendors := []models.Vendor{}
	for {
		resp, err := search(ctx, esClient, eq)
		if err != nil {
			return nil, err
		}
		hits := resp.Hits.Hits
		for _, hit := range hits {
			vendors = append(vendors, hit.Source)
		}
		if len(hits) < scanPageSize || len(hits[len(hits)-1].Sort) == 0 {
			return vendors, nil
		}
		eq.SearchAfter = hits[len(hits)-1].Sort
	}
}

func search(ctx context.Context, esClient *elasticsearch.Client, eq ElasticsearchQuery) (*searchResponse, error) {
	req, err := BuildQuery(eq)
	if err != nil {
		return nil, err
	}

	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, eq.Index)
	}
	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &r, nil
}

func clampSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}
