package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/tradecal/chinacal"
)

// WriteDataset replaces the stored calendar with ds inside one transaction.
func WriteDataset(db *sql.DB, ds chinacal.Dataset) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM calendar_days`, `DELETE FROM calendar_meta`} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
	}
	if _, err := tx.Exec(
		`INSERT INTO calendar_meta (key, value) VALUES ('min_year', ?), ('max_year', ?)`,
		ds.MinYear, ds.MaxYear,
	); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	ins, err := tx.Prepare(`INSERT INTO calendar_days (date, mark, holiday) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer ins.Close()
	for _, day := range ds.Days {
		if _, err := ins.Exec(day.Date, day.Mark, day.Holiday); err != nil {
			return fmt.Errorf("write day %s: %w", day.Date, err)
		}
	}
	return tx.Commit()
}

// ReadDataset loads the stored calendar. Validation happens in
// chinacal.NewTable, not here.
func ReadDataset(db *sql.DB) (chinacal.Dataset, error) {
	var ds chinacal.Dataset

	readMeta := func(key string, dst *int) error {
		err := db.QueryRow(`SELECT value FROM calendar_meta WHERE key = ?`, key).Scan(dst)
		if err != nil {
			return fmt.Errorf("read meta %s: %w", key, err)
		}
		return nil
	}
	if err := readMeta("min_year", &ds.MinYear); err != nil {
		return chinacal.Dataset{}, err
	}
	if err := readMeta("max_year", &ds.MaxYear); err != nil {
		return chinacal.Dataset{}, err
	}

	rows, err := db.Query(`SELECT date, mark, holiday FROM calendar_days ORDER BY date ASC`)
	if err != nil {
		return chinacal.Dataset{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var day chinacal.Day
		if err := rows.Scan(&day.Date, &day.Mark, &day.Holiday); err != nil {
			return chinacal.Dataset{}, err
		}
		ds.Days = append(ds.Days, day)
	}
	if err := rows.Err(); err != nil {
		return chinacal.Dataset{}, err
	}
	return ds, nil
}
