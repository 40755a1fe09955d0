// internal/workers/data-access/query-postgresql/queries/registry.go
package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventhub-workers/internal/models"
)

var (
	ErrMissingParam     = errors.New("missing required parameter")
	ErrUnknownQueryType = errors.New("unknown query type")
)

// QueryFunc returns: data, rowCount, executionTime (ms), error
type QueryFunc func(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error)

var Registry = map[models.QueryType]QueryFunc{
	models.QueryTypeEventsByIDs:      EventsByIDs,
	models.QueryTypeVerifiedVendors:  VerifiedVendors,
	models.QueryTypeVendorDetails:    VendorDetails,
	models.QueryTypeVendorSetVersion: VendorSetVersion,
}

func Execute(ctx context.Context, db *sql.DB, queryType models.QueryType, params map[string]interface{}) (interface{}, int, int64, error) {
	fn, exists := Registry[queryType]
	if !exists {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrUnknownQueryType, queryType)
	}
	return fn(ctx, db, params)
}

// stringsParam reads a non-empty id list from params. Values decoded from
// job variables arrive as []interface{}.
func stringsParam(params map[string]interface{}, key string) ([]string, error) {
	var out []string
	switch v := params[key].(type) {
	case []string:
		out = v
	case []interface{}:
		out = make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must contain strings", ErrMissingParam, key)
			}
			out = append(out, s)
		}
	}

	cleaned := out[:0:0]
	for _, s := range out {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	return cleaned, nil
}
