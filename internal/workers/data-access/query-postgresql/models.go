// internal/workers/data-access/query-postgresql/models.go
package querypostgresql

import "eventhub-workers/internal/models"

type Input struct {
	QueryType string   `json:"queryType"`
	EventIDs  []string `json:"eventIds,omitempty"`
	VendorIDs []string `json:"vendorIds,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

var (
	QueryTypeEventsByIDs      = models.QueryTypeEventsByIDs
	QueryTypeVerifiedVendors  = models.QueryTypeVerifiedVendors
	QueryTypeVendorDetails    = models.QueryTypeVendorDetails
	QueryTypeVendorSetVersion = models.QueryTypeVendorSetVersion
)
