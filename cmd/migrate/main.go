// cmd/migrate/main.go
// Copies events, classes, riders, horses, pairs, results and user profiles
// from a legacy MySQL results database into the local PostgreSQL database.
// Re-runs skip rows that already exist.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/results?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/padraicbc/eventresults/config"
	bundb "github.com/padraicbc/eventresults/db"
	"github.com/padraicbc/eventresults/store"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/results?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	// session_replication_role is per connection, so every insert goes
	// through this one.
	conn, err := pgDB.Conn(ctx)
	if err != nil {
		log.Fatalf("pg conn: %v", err)
	}
	defer conn.Close()

	// Legacy rows may point at riders or horses that no longer exist.
	if _, err := conn.ExecContext(ctx, "SET session_replication_role = 'replica'"); err != nil {
		log.Fatalf("disable FK: %v", err)
	}
	defer func() {
		if _, err := conn.ExecContext(ctx, "SET session_replication_role = 'origin'"); err != nil {
			log.Printf("re-enable FK: %v", err)
		}
	}()

	for _, s := range steps {
		n, err := s.fn(ctx, myDB, &conn)
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-15s  %d rows migrated", s.name, n)
	}

	bad, err := store.New(&conn).InconsistentResults(ctx)
	if err != nil {
		log.Fatalf("check results: %v", err)
	}
	for _, id := range bad {
		log.Printf("result %s: class belongs to a different event", id)
	}
	log.Printf("migration complete, %d inconsistent results", len(bad))
}

type step struct {
	name string
	fn   func(ctx context.Context, myDB *sql.DB, pg bun.IDB) (int, error)
}

// skipRow is returned by a scan func for a row that must not be copied.
type skipRow struct{ reason string }

func (e *skipRow) Error() string { return e.reason }

// copyRows streams query results from MySQL into pg in batches. scan reads
// the current row into a model; rows it rejects with *skipRow are logged
// and left out.
func copyRows[T any](ctx context.Context, myDB *sql.DB, pg bun.IDB, query string, scan func(*sql.Rows, *T) error) (int, error) {
	rows, err := myDB.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	batch := make([]T, 0, batchSize)
	total := 0
	for rows.Next() {
		var r T
		if err := scan(rows, &r); err != nil {
			var skip *skipRow
			if errors.As(err, &skip) {
				log.Printf("skipped: %s", skip.reason)
				continue
			}
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pg, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	if err := bulkInsert(ctx, pg, batch); err != nil {
		return total, err
	}
	return total + len(batch), nil
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pg bun.IDB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pg.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}
