package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMigrateSQLiteCreatesTables(t *testing.T) {
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	for _, table := range []string{"identities", "admin_profiles", "activity_logs", "settings"} {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestMigrateSQLiteAdminProfileColumns(t *testing.T) {
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	for _, column := range []string{"provider_user_id", "role", "is_active", "last_login", "created_by"} {
		if !conn.Migrator().HasColumn("admin_profiles", column) {
			t.Fatalf("admin_profiles missing column %s", column)
		}
	}
}

func TestDetectDialectFromDSN(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"postgres://u:p@localhost/db": DialectPostgres,
		"host=localhost user=admin":   DialectPostgres,
		"file:data/admin.db":          DialectSQLite,
		"sqlite://data/admin.db":      DialectSQLite,
		":memory:":                    DialectSQLite,
	}
	for dsn, want := range cases {
		got, errDetect := detectDialectFromDSN(dsn)
		if errDetect != nil {
			t.Fatalf("detectDialectFromDSN(%q): %v", dsn, errDetect)
		}
		if got != want {
			t.Fatalf("detectDialectFromDSN(%q) = %q, want %q", dsn, got, want)
		}
	}
}
