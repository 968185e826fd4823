package repository

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunSession(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db.Session(&gorm.Session{DryRun: true})
}

func renderOverlapScan(t *testing.T, excludeID uint) (string, []interface{}) {
	t.Helper()

	start := time.Date(2030, 4, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	var held []struct{ ID uint }
	stmt := overlappingBooked(dryRunSession(t), 2, start, end, excludeID).
		Limit(1).
		Find(&held).Statement

	return stmt.SQL.String(), stmt.Vars
}

// Postgres rejects FOR UPDATE on aggregate queries (SQLSTATE 0A000), so
// the in-transaction conflict scan must lock plain rows, never a count.
func TestOverlapScanLocksRowsWithoutAggregating(t *testing.T) {
	sql, _ := renderOverlapScan(t, 0)

	if strings.Contains(strings.ToLower(sql), "count(") {
		t.Errorf("conflict scan aggregates under a row lock: %s", sql)
	}
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Errorf("conflict scan does not lock the candidate rows: %s", sql)
	}

	for _, fragment := range []string{
		"employee_id = ?",
		"status = 'booked'",
		"start_time < ?",
		"end_time > ?",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("conflict scan is missing %q: %s", fragment, sql)
		}
	}
}

func TestOverlapScanExcludesOwnRowOnReschedule(t *testing.T) {
	sql, vars := renderOverlapScan(t, 50)

	if !strings.Contains(sql, "id <> ?") {
		t.Fatalf("reschedule scan does not exclude the appointment's own row: %s", sql)
	}

	found := false
	for _, v := range vars {
		if id, ok := v.(uint); ok && id == 50 {
			found = true
		}
	}
	if !found {
		t.Errorf("excluded id not bound: %v", vars)
	}

	// The plain create scan carries no exclusion.
	sql, _ = renderOverlapScan(t, 0)
	if strings.Contains(sql, "id <> ?") {
		t.Errorf("create scan must not exclude any row: %s", sql)
	}
}
