package musclemap

import (
	"io/fs"
	"strings"
	"testing"
)

// TestMigrationsPaired verifies every embedded up migration has a down
// migration.
func TestMigrationsPaired(t *testing.T) {
	ups, err := fs.Glob(MigrationsFS, "migrations/*.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(ups) < 2 {
		t.Fatalf("found %d up migrations, want at least 2", len(ups))
	}
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := fs.Stat(MigrationsFS, down); err != nil {
			t.Errorf("%s has no down migration: %v", up, err)
		}
	}
}

// TestSeqMigration verifies the insertion sequence column used to break
// timestamp ties is created.
func TestSeqMigration(t *testing.T) {
	data, err := fs.ReadFile(MigrationsFS, "migrations/000002_add_reading_seq.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "ADD COLUMN IF NOT EXISTS seq BIGSERIAL") {
		t.Errorf("migration does not add seq:\n%s", data)
	}
}
