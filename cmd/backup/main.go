package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"magilearn/internal/config"
	"magilearn/internal/database"
	"magilearn/internal/service"
	"magilearn/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	if cfg.DatabaseType == "memory" {
		log.Fatal("The backup tool requires a SQL database; set DB_TYPE to sqlite, postgres, or mysql")
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Keep the schema current before touching data
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backups := service.NewBackupService(store.NewSQLStore(db))

	switch os.Args[1] {
	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		output := fs.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
		fs.Parse(os.Args[2:])
		err = runExport(backups, *output)

	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		input := fs.String("input", "", "Input file path (required)")
		clear := fs.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")
		fs.Parse(os.Args[2:])
		if *input == "" {
			fmt.Println("Error: -input flag is required")
			fs.PrintDefaults()
			os.Exit(1)
		}
		err = runImport(backups, db, *input, *clear)

	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func runExport(backups *service.BackupService, outputPath string) error {
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	log.Printf("Exporting to: %s", outputPath)
	if err := backups.Export(outputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	info, err := os.Stat(outputPath)
	if err == nil {
		log.Printf("Export complete (%.1f KB)", float64(info.Size())/1024)
	}
	return nil
}

func runImport(backups *service.BackupService, db *database.DB, inputPath string, clearData bool) error {
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("cannot read input file %s: %w", inputPath, err)
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Import cancelled")
			return nil
		}
		if err := clearAllData(db); err != nil {
			return fmt.Errorf("failed to clear database: %w", err)
		}
	}

	log.Printf("Importing from: %s", inputPath)
	if err := backups.Import(inputPath); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	log.Println("Import complete")
	return nil
}

// clearAllData empties every table, children before parents so the
// foreign keys stay satisfied.
func clearAllData(db *database.DB) error {
	tables := []string{
		"game_stats",
		"achievements",
		"unlocked_games",
		"daily_spins",
		"user_progress",
		"sessions",
		"users",
	}

	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
		log.Printf("Cleared table: %s", table)
	}
	return nil
}

func printUsage() {
	fmt.Print(`MagiLearn database backup tool

Usage:
  backup export [-output <file>]
  backup import -input <file> [-clear]

Commands:
  export    Write all users and their records to a JSON file
  import    Load a JSON backup; existing users are skipped unless -clear

Environment:
  DB_TYPE         sqlite, postgres, or mysql
  DB_PATH         SQLite database path (default: ./magilearn.db)
  DATABASE_URL    PostgreSQL or MySQL connection URL
`)
}
