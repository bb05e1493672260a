package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brandcrew/ambassador-crm/pkg/migrate"
)

func TestMerchApplicationsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_merch_applications.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS merch_applications",
		"CREATE TABLE IF NOT EXISTS merch_line_items",
		"CONSTRAINT merch_applications_application_number_key UNIQUE (application_number)",
		"FOREIGN KEY (ambassador_id) REFERENCES ambassadors(id) ON DELETE CASCADE",
		"FOREIGN KEY (application_id) REFERENCES merch_applications(id) ON DELETE CASCADE",
		"CHECK (quantity >= 1 AND quantity <= 100)",
		"DROP TABLE IF EXISTS merch_line_items",
		"DROP TABLE IF EXISTS merch_applications",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCatalogMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_merch_catalog.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS merch_categories",
		"CREATE TABLE IF NOT EXISTS merch_items",
		"CONSTRAINT merch_items_name_size_key UNIQUE (name, size)",
		"CHECK (cost >= 0)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
