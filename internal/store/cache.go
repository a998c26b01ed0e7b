// Package store provides a SQLite-backed history of monthly reports.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/spotbill/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

// ErrNotFound means no report is stored for the requested month.
var ErrNotFound = errors.New("no stored report for month")

// History stores one report per month, replacing it on every save.
type History struct {
	db *sql.DB
}

// Record is a stored monthly report.
type Record struct {
	Summary        model.SummaryStats
	MarginCents    float64
	BasePriceCents float64

	// Source identifies the usage report the record was built from.
	Source SourceInfo

	GeneratedAt time.Time
}

// SourceInfo holds the path, mtime and size of a usage report.
type SourceInfo struct {
	Path      string
	MtimeNs   int64
	SizeBytes int64
}

// StatSource returns the SourceInfo of the file at path.
func StatSource(path string) (SourceInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return SourceInfo{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return SourceInfo{Path: abs, MtimeNs: fi.ModTime().UnixNano(), SizeBytes: fi.Size()}, nil
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Save stores rec and its days, replacing any earlier report for the month.
func (h *History) Save(rec Record, days []model.DailyStats) error {
	if rec.Summary.Month.IsZero() {
		return errors.New("record has no month")
	}
	month := rec.Summary.Month.Format(monthLayout)

	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	generated := rec.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	s := rec.Summary
	_, err = tx.Exec(`INSERT OR REPLACE INTO monthly_reports
		(month, hours, days, total_usage, total_cost, total_energy_cost,
		 average_price, daily_base_fee, peak_day, peak_day_cost,
		 margin_cents, base_price_cents, usage_file, usage_mtime_ns, usage_size, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		month, s.Hours, s.Days, s.TotalUsage, s.TotalCost, s.TotalEnergyCost,
		s.AveragePrice, s.DailyBaseFee, s.PeakDay, s.PeakDayCost,
		rec.MarginCents, rec.BasePriceCents, rec.Source.Path, rec.Source.MtimeNs, rec.Source.SizeBytes,
		generated.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	// Delete old days for this month
	if _, err := tx.Exec("DELETE FROM daily_costs WHERE month = ?", month); err != nil {
		return err
	}

	for _, d := range days {
		_, err = tx.Exec(`INSERT INTO daily_costs
			(month, day, label, hours, usage_kwh, energy_cost, cost)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			month, d.Date.Format(dayLayout), d.Label, d.Hours, d.UsageKWh, d.EnergyCost, d.Cost,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

const recordColumns = `month, hours, days, total_usage, total_cost, total_energy_cost,
	average_price, daily_base_fee, peak_day, peak_day_cost,
	margin_cents, base_price_cents, usage_file, usage_mtime_ns, usage_size, generated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var month, generated string
	var peakDay, usageFile sql.NullString
	var peakCost sql.NullFloat64
	var mtime, size sql.NullInt64

	s := &rec.Summary
	err := row.Scan(
		&month, &s.Hours, &s.Days, &s.TotalUsage, &s.TotalCost, &s.TotalEnergyCost,
		&s.AveragePrice, &s.DailyBaseFee, &peakDay, &peakCost,
		&rec.MarginCents, &rec.BasePriceCents, &usageFile, &mtime, &size, &generated,
	)
	if err != nil {
		return rec, err
	}

	s.Month, _ = time.Parse(monthLayout, month)
	s.PeakDay = peakDay.String
	s.PeakDayCost = peakCost.Float64
	rec.Source = SourceInfo{Path: usageFile.String, MtimeNs: mtime.Int64, SizeBytes: size.Int64}
	rec.GeneratedAt, _ = time.Parse(time.RFC3339, generated)
	return rec, nil
}

// List returns all stored reports, newest month first.
func (h *History) List() ([]Record, error) {
	rows, err := h.db.Query("SELECT " + recordColumns + " FROM monthly_reports ORDER BY month DESC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns the stored report for month.
func (h *History) Get(month time.Time) (Record, error) {
	row := h.db.QueryRow("SELECT "+recordColumns+" FROM monthly_reports WHERE month = ?", month.Format(monthLayout))
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("%w %s", ErrNotFound, month.Format(monthLayout))
	}
	return rec, err
}

// Days returns the stored daily rows for month in date order.
func (h *History) Days(month time.Time) ([]model.DailyStats, error) {
	rows, err := h.db.Query(`SELECT day, label, hours, usage_kwh, energy_cost, cost
		FROM daily_costs WHERE month = ? ORDER BY day`, month.Format(monthLayout))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var days []model.DailyStats
	for rows.Next() {
		var d model.DailyStats
		var day string
		if err := rows.Scan(&day, &d.Label, &d.Hours, &d.UsageKWh, &d.EnergyCost, &d.Cost); err != nil {
			return nil, err
		}
		d.Date, _ = time.Parse(dayLayout, day)
		days = append(days, d)
	}
	return days, rows.Err()
}

// Unchanged reports whether the stored report for rec's month was built
// from the same usage file and tariff and priced to the same total. Saving
// such a record again would only bump its timestamp.
func (h *History) Unchanged(rec Record) (bool, error) {
	stored, err := h.Get(rec.Summary.Month)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored.Source == rec.Source &&
		stored.MarginCents == rec.MarginCents &&
		stored.BasePriceCents == rec.BasePriceCents &&
		stored.Summary.Hours == rec.Summary.Hours &&
		stored.Summary.TotalCost == rec.Summary.TotalCost, nil
}

// Delete removes the report for month and its days.
func (h *History) Delete(month time.Time) error {
	res, err := h.db.Exec("DELETE FROM monthly_reports WHERE month = ?", month.Format(monthLayout))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w %s", ErrNotFound, month.Format(monthLayout))
	}
	return nil
}

// Count returns the number of stored monthly reports.
func (h *History) Count() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM monthly_reports").Scan(&count)
	return count, err
}
