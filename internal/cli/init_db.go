package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/tracklog/internal/db"
)

// RunInitDBCommand creates the events table if needed and reports how many
// events are stored. Repeated runs leave existing data untouched.
func RunInitDBCommand(dbPath string, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	count, err := db.NewEventRepository(database).Count()
	if err != nil {
		return fmt.Errorf("count events: %w", err)
	}

	fmt.Fprintf(out, "✅ Database ready: %s\n", dbPath)
	fmt.Fprintf(out, "Stored events: %d\n", count)
	return nil
}
