// internal/workers/data-access/query-postgresql/queries/vendors.go
package queries

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/lib/pq"

	"eventhub-workers/internal/models"
)

const vendorColumns = `id, business_name, description, services, location, verified, featured, rating`

const (
	verifiedVendorsQuery = `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE verified = true
		ORDER BY id`

	vendorsByIDsQuery = `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE id = ANY($1)`

	vendorSetVersionQuery = `
		SELECT COUNT(*), COALESCE(FLOOR(EXTRACT(EPOCH FROM MAX(updated_at)) * 1000), 0)::bigint
		FROM vendors
		WHERE verified = true`
)

// LoadVerifiedVendors returns every verified vendor ordered by id.
func LoadVerifiedVendors(ctx context.Context, db *sql.DB) ([]models.Vendor, error) {
	rows, err := db.QueryContext(ctx, verifiedVendorsQuery)
	if err != nil {
		return nil, err
	}
	return scanVendors(rows)
}

// LoadVendorsByIDs returns the listed vendors regardless of verification.
func LoadVendorsByIDs(ctx context.Context, db *sql.DB, ids []string) ([]models.Vendor, error) {
	rows, err := db.QueryContext(ctx, vendorsByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return scanVendors(rows)
}

// LoadVendorSetVersion fingerprints the verified vendor set as
// "<count>-<last update in unix ms>". Any vendor change moves it.
func LoadVendorSetVersion(ctx context.Context, db *sql.DB) (string, error) {
	var count, updatedAt int64
	if err := db.QueryRowContext(ctx, vendorSetVersionQuery).Scan(&count, &updatedAt); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%d", count, updatedAt), nil
}

func scanVendors(rows *sql.Rows) ([]models.Vendor, error) {
	defer rows.Close()

	vendors := []models.Vendor{}
	for rows.Next() {
		var (
			v                                   models.Vendor
			services                            pq.StringArray
			businessName, description, location sql.NullString
			verified, featured                  sql.NullBool
			rating                              sql.NullFloat64
		)
		if err := rows.Scan(&v.ID, &businessName, &description, &services, &location, &verified, &featured, &rating); err != nil {
			return nil, err
		}
		v.BusinessName = businessName.String
		v.Description = description.String
		v.Verified = verified.Bool
		v.Featured = featured.Bool
		v.Services = []string(services)
		if v.Services == nil {
			v.Services = []string{}
		}
		v.Location = location.String
		if rating.Valid && !math.IsNaN(rating.Float64) && !math.IsInf(rating.Float64, 0) {
			v.Rating = rating.Float64
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func VerifiedVendors(ctx context.Context, db *sql.DB, _ map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()
	vendors, err := LoadVerifiedVendors(ctx, db)
	if err != nil {
		return nil, 0, 0, err
	}
	return vendors, len(vendors), time.Since(start).Milliseconds(), nil
}

func VendorDetails(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	ids, err := stringsParam(params, "vendorIds")
	if err != nil {
		return nil, 0, 0, err
	}

	start := time.Now()
	vendors, err := LoadVendorsByIDs(ctx, db, ids)
	if err != nil {
		return nil, 0, 0, err
	}
	return vendors, len(vendors), time.Since(start).Milliseconds(), nil
}

func VendorSetVersion(ctx context.Context, db *sql.DB, _ map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()
	version, err := LoadVendorSetVersion(ctx, db)
	if err != nil {
		return nil, 0, 0, err
	}
	return map[string]interface{}{"version": version}, 1, time.Since(start).Milliseconds(), nil
}
