package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/eventresults/config"
	"github.com/padraicbc/eventresults/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

type table struct {
	model       interface{}
	foreignKeys []string
}

// tables lists every table in dependency order.
var tables = []table{
	{model: (*models.UserProfile)(nil)},
	{model: (*models.Event)(nil)},
	{model: (*models.Rider)(nil)},
	{model: (*models.Horse)(nil)},
	{
		model:       (*models.Class)(nil),
		foreignKeys: []string{`("event_id") REFERENCES "events" ("id")`},
	},
	{
		model: (*models.Pair)(nil),
		foreignKeys: []string{
			`("rider_id") REFERENCES "riders" ("id")`,
			`("horse_id") REFERENCES "horses" ("id")`,
		},
	},
	{
		model: (*models.Result)(nil),
		foreignKeys: []string{
			`("event_id") REFERENCES "events" ("id")`,
			`("class_id") REFERENCES "classes" ("id")`,
			`("pair_id") REFERENCES "pairs" ("id")`,
		},
	},
}

var indexes = []struct {
	model  interface{}
	name   string
	column string
}{
	{(*models.Event)(nil), "idx_events_status", "status"},
	{(*models.Event)(nil), "idx_events_date", "event_date"},
	{(*models.Class)(nil), "idx_classes_event_id", "event_id"},
	{(*models.Result)(nil), "idx_results_event_id", "event_id"},
	{(*models.Result)(nil), "idx_results_class_id", "class_id"},
}

// CreateTables creates all tables and indexes. It is idempotent.
func CreateTables(ctx context.Context, db bun.IDB) error {
	for _, t := range tables {
		q := db.NewCreateTable().Model(t.model).IfNotExists()
		for _, fk := range t.foreignKeys {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", t.model, err)
		}
	}

	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.column).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
