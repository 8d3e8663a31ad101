package config

import (
	"strings"
	"testing"
)

func TestBuildDSN_ReportsMatchedRows(t *testing.T) {
	dsn := buildDSN(MySQLConfig{
		User:     "traveline",
		Password: "pw",
		Host:     "127.0.0.1:3306",
		Database: "traveline",
	})

	if !strings.HasPrefix(dsn, "traveline:pw@tcp(127.0.0.1:3306)/traveline?") {
		t.Fatalf("unexpected DSN shape: %s", dsn)
	}
	// Repositories translate RowsAffected()==0 into sql.ErrNoRows, so the
	// driver must count matched rows; otherwise an UPDATE that changes
	// nothing on an existing row reads as not-found.
	if !strings.Contains(dsn, "clientFoundRows=true") {
		t.Fatalf("DSN must request matched-rows counting: %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("DSN must parse time columns: %s", dsn)
	}
}
