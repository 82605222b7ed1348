package db

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
)

// DB wraps the postgres connection used by the turn log.
type DB struct {
	*sql.DB
}

// New opens a postgres connection. When the first ping fails and the
// connection string carries no sslmode, it retries once with SSL
// disabled (managed postgres offerings differ here).
func New(connectionString string) (*DB, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("database connection string is required")
	}
	sqlDB, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		if !strings.Contains(strings.ToLower(connectionString), "sslmode") {
			log.Println("retrying database connection with SSL disabled")
			sqlDB.Close()
			sep := "?"
			if strings.Contains(connectionString, "?") {
				sep = "&"
			}
			sqlDB, err = sql.Open("postgres", connectionString+sep+"sslmode=disable")
			if err != nil {
				return nil, fmt.Errorf("failed to open database: %w", err)
			}
		}
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	return &DB{DB: sqlDB}, nil
}

func (db *DB) HealthCheck() error {
	return db.Ping()
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// Migration is a single numbered SQL migration file.
type Migration struct {
	Number int
	Name   string
	SQL    string
}

// RunMigrations applies pending SQL migrations from migrationsDir,
// tracking applied versions in schema_migrations.
func (db *DB) RunMigrations(migrationsDir string) error {
	migrations, err := readMigrations(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	if len(migrations) == 0 {
		log.Println("no migrations found")
		return nil
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = $1", m.Number).Scan(&count); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			continue
		}
		log.Printf("applying migration %d: %s", m.Number, m.Name)
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %d: %w", m.Number, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", m.Number, m.Name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration: %w", err)
		}
	}
	return nil
}

// readMigrations loads NNN_name.sql files sorted by number.
func readMigrations(migrationsDir string) ([]Migration, error) {
	var migrations []Migration
	err := filepath.WalkDir(migrationsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".sql") {
			return nil
		}
		parts := strings.SplitN(d.Name(), "_", 2)
		if len(parts) < 2 {
			return nil
		}
		number, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil
		}
		sqlBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", d.Name(), err)
		}
		migrations = append(migrations, Migration{
			Number: number,
			Name:   strings.TrimSuffix(parts[1], ".sql"),
			SQL:    string(sqlBytes),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Number < migrations[j].Number })
	return migrations, nil
}
