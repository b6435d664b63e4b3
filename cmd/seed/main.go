// cmd/seed/main.go
// Loads one event, its classes and results from a YAML file. The event is
// created as a draft; publish it with POST /api/admin/publish.
//
// Usage:
//
//	go run ./cmd/seed -file spring-cup.yaml
//
// File layout:
//
//	event:
//	  name: Spring Cup
//	  date: 2026-04-02
//	classes:
//	  - name: Novice Test
//	    level: Novice
//	    results:
//	      - {rider: Dana Levi, horse: Storm, score: 68.5}
//	      - {rider: Sam Ortiz, horse: Juniper, score: 64.25, eligible: false}
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/padraicbc/eventresults/config"
	bundb "github.com/padraicbc/eventresults/db"
	"github.com/padraicbc/eventresults/store"
)

func main() {
	path := flag.String("file", "", "event YAML file (required)")
	flag.Parse()

	if *path == "" {
		log.Fatal("-file is required")
	}

	fh, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open %s: %v", *path, err)
	}
	defer fh.Close()

	f, err := parseEventFile(fh)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	sum, err := load(ctx, store.New(db), f)
	if err != nil {
		log.Fatalf("seed %s: %v", *path, err)
	}
	log.Printf("event %s seeded: %d classes, %d riders, %d horses, %d pairs, %d results",
		sum.EventID, sum.Classes, sum.Riders, sum.Horses, sum.Pairs, sum.Results)
}
