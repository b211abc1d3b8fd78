package scenario

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/Simplici0/roicalc/internal/report"
	"github.com/Simplici0/roicalc/internal/roi"
)

const timeLayout = "2006-01-02 15:04:05"

// ErrNotFound is returned when no scenario has the requested id.
var ErrNotFound = eris.New("scenario not found")

// Scenario is a saved calculation: the inputs plus a snapshot of the result at save time.
type Scenario struct {
	ID        string
	CreatedAt time.Time
	CreatedBy string
	Title     string
	Notes     string
	Profile   roi.FirmProfile
	Result    roi.Result
}

// ListItem is a row of the scenarios list.
type ListItem struct {
	ID                  string
	CreatedAt           string
	Title               string
	TotalAnnualBenefits float64
	Year1ROI            float64
}

// Store persists scenarios in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Save stores the profile and a snapshot of its result, and returns the scenario
// with its assigned id and creation time.
func (s *Store) Save(ctx context.Context, sc Scenario) (Scenario, error) {
	sc.Title = strings.TrimSpace(sc.Title)
	if sc.Title == "" {
		return Scenario{}, eris.New("scenario: title is required")
	}
	sc.Notes = strings.TrimSpace(sc.Notes)
	sc.ID = uuid.NewString()
	sc.CreatedAt = s.now().UTC().Truncate(time.Second)

	snapshot, err := json.Marshal(report.NewDocument(sc.Profile, sc.Result))
	if err != nil {
		return Scenario{}, eris.Wrap(err, "scenario: encode snapshot")
	}

	p := sc.Profile
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scenarios (
			id, created_at, created_by, title, notes,
			firm_size, avg_salary, current_compliance_cost, annual_revenue,
			incident_risk, audit_hours, downtime_cost,
			result_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sc.ID, sc.CreatedAt.Format(timeLayout), sc.CreatedBy, sc.Title, sc.Notes,
		p.FirmSize, p.AvgSalary, p.CurrentComplianceCost, p.AnnualRevenue,
		p.IncidentRisk, p.AuditHours, p.DowntimeCost,
		string(snapshot),
	)
	if err != nil {
		return Scenario{}, eris.Wrap(err, "scenario: insert")
	}

	return sc, nil
}

// List returns scenarios newest first. A non-empty query filters by title and notes.
func (s *Store) List(ctx context.Context, query string) ([]ListItem, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, title, result_json
		FROM scenarios
		WHERE (? = '' OR title LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, rowid DESC
	`, query, search, search)
	if err != nil {
		return nil, eris.Wrap(err, "scenario: query list")
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		var item ListItem
		var snapshot string
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.Title, &snapshot); err != nil {
			return nil, eris.Wrap(err, "scenario: scan list row")
		}
		var doc report.Document
		if err := json.Unmarshal([]byte(snapshot), &doc); err != nil {
			return nil, eris.Wrapf(err, "scenario: decode snapshot %s", item.ID)
		}
		item.TotalAnnualBenefits = float64(doc.Benefits.TotalAnnualBenefits)
		item.Year1ROI = float64(doc.Analysis.Year1ROI)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "scenario: iterate list")
	}

	return items, nil
}

// Get loads one scenario. The result is read from the stored snapshot, not recomputed.
func (s *Store) Get(ctx context.Context, id string) (Scenario, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Scenario{}, ErrNotFound
	}

	var (
		sc        Scenario
		createdAt string
		createdBy sql.NullString
		notes     sql.NullString
		snapshot  string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT
			id, created_at, created_by, title, notes,
			firm_size, avg_salary, current_compliance_cost, annual_revenue,
			incident_risk, audit_hours, downtime_cost,
			result_json
		FROM scenarios
		WHERE id = ?
	`, id).Scan(
		&sc.ID, &createdAt, &createdBy, &sc.Title, &notes,
		&sc.Profile.FirmSize, &sc.Profile.AvgSalary, &sc.Profile.CurrentComplianceCost, &sc.Profile.AnnualRevenue,
		&sc.Profile.IncidentRisk, &sc.Profile.AuditHours, &sc.Profile.DowntimeCost,
		&snapshot,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, ErrNotFound
	}
	if err != nil {
		return Scenario{}, eris.Wrap(err, "scenario: query")
	}

	sc.CreatedBy = createdBy.String
	sc.Notes = notes.String
	if sc.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return Scenario{}, eris.Wrapf(err, "scenario: parse created_at %q", createdAt)
	}

	var doc report.Document
	if err := json.Unmarshal([]byte(snapshot), &doc); err != nil {
		return Scenario{}, eris.Wrap(err, "scenario: decode snapshot")
	}
	sc.Result = doc.Result()

	return sc, nil
}

// Delete removes a scenario.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return eris.Wrap(err, "scenario: delete")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "scenario: delete rows affected")
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of saved scenarios with the given title.
func (s *Store) Count(ctx context.Context, title string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scenarios WHERE title = ?`, title).Scan(&n); err != nil {
		return 0, eris.Wrap(err, "scenario: count")
	}
	return n, nil
}
