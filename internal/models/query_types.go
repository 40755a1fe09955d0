// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeEventsByIDs      QueryType = "events_by_ids"
	QueryTypeVerifiedVendors  QueryType = "verified_vendors"
	QueryTypeVendorDetails    QueryType = "vendor_details"
	QueryTypeVendorSetVersion QueryType = "vendor_set_version"
)
