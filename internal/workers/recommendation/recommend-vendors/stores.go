package recommendvendors

import (
	"context"
	"database/sql"

	"github.com/elastic/go-elasticsearch/v8"

	"eventhub-workers/internal/models"
	esqueries "eventhub-workers/internal/workers/data-access/query-elasticsearch/queries"
	pgqueries "eventhub-workers/internal/workers/data-access/query-postgresql/queries"
)

// PostgresStore reads events and vendors from the primary database.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetEventsByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	return pgqueries.LoadEventsByIDs(ctx, s.db, ids)
}

func (s *PostgresStore) GetVerifiedVendors(ctx context.Context) ([]models.Vendor, error) {
	return pgqueries.LoadVerifiedVendors(ctx, s.db)
}

// VendorSetVersion changes whenever a verified vendor is added, removed or updated.
func (s *PostgresStore) VendorSetVersion(ctx context.Context) (string, error) {
	return pgqueries.LoadVendorSetVersion(ctx, s.db)
}

// ElasticsearchVendorStore reads verified vendors from the search index.
type ElasticsearchVendorStore struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchVendorStore(client *elasticsearch.Client, index string) *ElasticsearchVendorStore {
	return &ElasticsearchVendorStore{client: client, index: index}
}

func (s *ElasticsearchVendorStore) GetVerifiedVendors(ctx context.Context) ([]models.Vendor, error) {
	return esqueries.SearchVerifiedVendors(ctx, s.client, s.index)
}
