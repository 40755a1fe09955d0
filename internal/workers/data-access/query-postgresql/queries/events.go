// internal/workers/data-access/query-postgresql/queries/events.go
package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"eventhub-workers/internal/models"
)

const eventsByIDsQuery = `
		SELECT id, customer_id, event_type, requirements, location, title, description
		FROM events
		WHERE id = ANY($1)`

// LoadEventsByIDs returns the events whose ids are listed. Unknown ids are
// simply absent from the result.
func LoadEventsByIDs(ctx context.Context, db *sql.DB, ids []string) ([]models.Event, error) {
	rows, err := db.QueryContext(ctx, eventsByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var (
			e                                             models.Event
			requirements                                  pq.StringArray
			customerID, eventType, location, title, descr sql.NullString
		)
		if err := rows.Scan(&e.ID, &customerID, &eventType, &requirements, &location, &title, &descr); err != nil {
			return nil, err
		}
		e.CustomerID = customerID.String
		e.EventType = eventType.String
		e.Requirements = []string(requirements)
		if e.Requirements == nil {
			e.Requirements = []string{}
		}
		e.Location = location.String
		e.Title = title.String
		e.Description = descr.String
		events = append(events, e)
	}
	return events, rows.Err()
}

func EventsByIDs(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	ids, err := stringsParam(params, "eventIds")
	if err != nil {
		return nil, 0, 0, err
	}

	start := time.Now()
	events, err := LoadEventsByIDs(ctx, db, ids)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return events, len(events), execTime, nil
}
