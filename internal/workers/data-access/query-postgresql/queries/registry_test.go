package queries

import (
	"context"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub-workers/internal/models"
)

func TestStringsParam(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    []string
		wantErr bool
	}{
		{"typed slice", []string{"a", " b "}, []string{"a", "b"}, false},
		{"decoded json array", []interface{}{"a", "b"}, []string{"a", "b"}, false},
		{"non string element", []interface{}{"a", 1}, nil, true},
		{"missing", nil, nil, true},
		{"only blanks", []string{"", "  "}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stringsParam(map[string]interface{}{"ids": tt.value}, "ids")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingParam)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecute_UnknownQueryType(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, _, _, err = Execute(context.Background(), db, models.QueryType("nope"), nil)
	assert.ErrorIs(t, err, ErrUnknownQueryType)
}

func TestLoadVendorSetVersion_EmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM vendors WHERE verified = true`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "updated"}).AddRow(0, 0))

	version, err := LoadVendorSetVersion(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, "0-0", version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadEventsByIDs_NullColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "customer_id", "event_type", "requirements", "location", "title", "description"}).
		AddRow("e1", nil, nil, nil, nil, nil, nil).
		AddRow("e2", "c1", "Wedding", "{Photography}", "Kathmandu", "Spring wedding", "Outdoor")
	mock.ExpectQuery(`FROM events WHERE id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	events, err := LoadEventsByIDs(context.Background(), db, []string{"e1", "e2"})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, models.Event{ID: "e1", Requirements: []string{}}, events[0])
	assert.Equal(t, "Wedding", events[1].EventType)
	assert.Equal(t, []string{"Photography"}, events[1].Requirements)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadVerifiedVendors_NullColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	columns := []string{"id", "business_name", "description", "services", "location", "verified", "featured", "rating"}
	rows := sqlmock.NewRows(columns).
		AddRow("v1", nil, nil, nil, nil, nil, nil, nil).
		AddRow("v2", "Himalayan Frames", "Albums", "{Photography,Catering}", "Kathmandu", true, true, math.NaN()).
		AddRow("v3", "Valley Sounds", nil, "{Music}", nil, true, false, 4.5)
	mock.ExpectQuery(`FROM vendors WHERE verified = true ORDER BY id`).WillReturnRows(rows)

	vendors, err := LoadVerifiedVendors(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, vendors, 3)

	assert.Equal(t, models.Vendor{ID: "v1", Services: []string{}}, vendors[0])
	assert.Equal(t, "Himalayan Frames", vendors[1].BusinessName)
	assert.True(t, vendors[1].Verified)
	assert.True(t, vendors[1].Featured)
	assert.Equal(t, 0.0, vendors[1].Rating)
	assert.Equal(t, []string{"Photography", "Catering"}, vendors[1].Services)
	assert.Equal(t, 4.5, vendors[2].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}
