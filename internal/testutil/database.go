package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the local test database. Integration tests skip when no
// MySQL named 'partstrack_test' is reachable on localhost:3306.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/partstrack_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	if _, err := db.Exec("DELETE FROM PartOrders"); err != nil {
		t.Logf("failed to clean table PartOrders: %v", err)
	}

	db.Close()
}

// SetupTestTables creates the tables the integration tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createPartOrdersTable := `
	CREATE TABLE IF NOT EXISTS PartOrders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customerName VARCHAR(150) NOT NULL,
		partNumber VARCHAR(100) NOT NULL,
		technician VARCHAR(100) NOT NULL DEFAULT '',
		store VARCHAR(100) NOT NULL DEFAULT '',
		status VARCHAR(50) NOT NULL DEFAULT 'need to order',
		cancellationReason VARCHAR(255),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_status (status)
	)`

	if _, err := db.Exec(createPartOrdersTable); err != nil {
		t.Logf("failed to create table PartOrders: %v", err)
	}
}
