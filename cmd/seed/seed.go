package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/padraicbc/eventresults/models"
	"github.com/padraicbc/eventresults/store"
)

// eventFile is one event with its classes and scored entries.
type eventFile struct {
	Event struct {
		Name string `yaml:"name"`
		Date string `yaml:"date"`
	} `yaml:"event"`
	Classes []classEntry `yaml:"classes"`
}

type classEntry struct {
	Name    string        `yaml:"name"`
	Level   string        `yaml:"level"`
	Results []resultEntry `yaml:"results"`
}

type resultEntry struct {
	Rider    string `yaml:"rider"`
	Horse    string `yaml:"horse"`
	Score    string `yaml:"score"`
	Eligible *bool  `yaml:"eligible"`
}

type summary struct {
	EventID string
	Classes int
	Riders  int
	Horses  int
	Pairs   int
	Results int
}

func parseEventFile(r io.Reader) (*eventFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f eventFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode event file: %w", err)
	}
	if strings.TrimSpace(f.Event.Name) == "" {
		return nil, fmt.Errorf("event.name is required")
	}
	if _, err := time.Parse("2006-01-02", f.Event.Date); err != nil {
		return nil, fmt.Errorf("event.date must be YYYY-MM-DD: %w", err)
	}
	for i, c := range f.Classes {
		for j, res := range c.Results {
			if res.Rider == "" || res.Horse == "" {
				return nil, fmt.Errorf("classes[%d].results[%d]: rider and horse are required", i, j)
			}
			if _, err := decimal.NewFromString(res.Score); err != nil {
				return nil, fmt.Errorf("classes[%d].results[%d]: score %q: %w", i, j, res.Score, err)
			}
		}
	}
	return &f, nil
}

// load writes f in one transaction. The event is always a draft; it goes
// public through the admin publish endpoint. Riders, horses and pairs are
// shared by name within the file. Entries without an eligible flag are
// eligible.
func load(ctx context.Context, st *store.Store, f *eventFile) (summary, error) {
	var sum summary
	date, _ := time.Parse("2006-01-02", f.Event.Date)

	err := st.RunInTx(ctx, func(ctx context.Context, tx *store.Store) error {
		sum = summary{}
		event := &models.Event{Name: f.Event.Name, EventDate: date, Status: models.StatusDraft}
		if err := tx.CreateEvent(ctx, event); err != nil {
			return err
		}
		sum.EventID = event.ID.String()

		riders := map[string]*models.Rider{}
		horses := map[string]*models.Horse{}
		pairs := map[[2]string]*models.Pair{}

		for _, c := range f.Classes {
			class := &models.Class{EventID: event.ID, Name: c.Name, Level: c.Level}
			if err := tx.CreateClass(ctx, class); err != nil {
				return err
			}
			sum.Classes++

			for _, res := range c.Results {
				rider, ok := riders[res.Rider]
				if !ok {
					rider = &models.Rider{Name: res.Rider}
					if err := tx.CreateRider(ctx, rider); err != nil {
						return err
					}
					riders[res.Rider] = rider
					sum.Riders++
				}
				horse, ok := horses[res.Horse]
				if !ok {
					horse = &models.Horse{Name: res.Horse}
					if err := tx.CreateHorse(ctx, horse); err != nil {
						return err
					}
					horses[res.Horse] = horse
					sum.Horses++
				}
				key := [2]string{res.Rider, res.Horse}
				pair, ok := pairs[key]
				if !ok {
					pair = &models.Pair{RiderID: rider.ID, HorseID: horse.ID}
					if err := tx.CreatePair(ctx, pair); err != nil {
						return err
					}
					pairs[key] = pair
					sum.Pairs++
				}

				eligible := true
				if res.Eligible != nil {
					eligible = *res.Eligible
				}
				result := &models.Result{
					EventID:       event.ID,
					ClassID:       class.ID,
					PairID:        pair.ID,
					FinalScorePct: decimal.RequireFromString(res.Score),
					Eligible:      eligible,
				}
				if err := tx.CreateResult(ctx, result); err != nil {
					return err
				}
				sum.Results++
			}
		}
		return nil
	})
	return sum, err
}
