package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"brentstats/pkg/contracts/domain"
)

// EventDescriptionColumn names the description column of the events table
const EventDescriptionColumn = "Event_Description"

// EventStrategy is one way of reading the events table
type EventStrategy struct {
	Name  string
	Parse func(path string) ([]domain.Event, error)
}

// StrategyAttempt records the outcome of one strategy
type StrategyAttempt struct {
	Strategy string
	Err      error
}

// EventsResult is the outcome of LoadEvents. Events is nil when every
// strategy failed.
type EventsResult struct {
	Events   []domain.Event
	Strategy string
	Attempts []StrategyAttempt
}

// DefaultEventStrategies returns the standard reader followed by the permissive one
func DefaultEventStrategies() []EventStrategy {
	return []EventStrategy{
		{Name: "standard", Parse: parseEventsStandard},
		{Name: "permissive", Parse: parseEventsPermissive},
	}
}

// LoadEvents tries each strategy once, in order, and stops at the first
// success. Events keep file order. When all strategies fail the returned
// error wraps ErrNoEvents and every attempt's error.
func LoadEvents(path string, strategies []EventStrategy) (*EventsResult, error) {
	result := &EventsResult{}

	errs := []error{ErrNoEvents}
	for _, s := range strategies {
		events, err := s.Parse(path)
		result.Attempts = append(result.Attempts, StrategyAttempt{Strategy: s.Name, Err: err})
		if err == nil {
			result.Events = events
			result.Strategy = s.Name
			return result, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
	}

	return result, errors.Join(errs...)
}

// parseEventsStandard reads a well-formed CSV with gota and parses every
// date strictly. Any malformed record or ambiguous date fails the strategy.
func parseEventsStandard(path string) ([]domain.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read events csv: %w", df.Err)
	}

	for _, name := range []string{DateColumn, EventDescriptionColumn} {
		if !slices.Contains(df.Names(), name) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	dates := df.Col(DateColumn).Records()
	descriptions := df.Col(EventDescriptionColumn).Records()

	events := make([]domain.Event, 0, len(dates))
	for i, d := range dates {
		t, err := dateparse.ParseStrict(strings.TrimSpace(d))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse date %q: %w", i+1, d, err)
		}
		events = append(events, domain.Event{Date: t, Description: descriptions[i]})
	}
	return events, nil
}

// parseEventsPermissive tolerates a byte-order mark, stray quotes, padded
// headers and unquoted commas in the description, and infers each date's
// format independently.
func parseEventsPermissive(path string) ([]domain.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read events csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, DateColumn)
	}

	dateIdx, descIdx := -1, -1
	for j, h := range records[0] {
		switch {
		case strings.EqualFold(strings.TrimSpace(h), DateColumn):
			dateIdx = j
		case strings.EqualFold(strings.TrimSpace(h), EventDescriptionColumn):
			descIdx = j
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, DateColumn)
	}
	if descIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, EventDescriptionColumn)
	}

	events := make([]domain.Event, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) <= dateIdx || len(rec) <= descIdx {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", i+1, max(dateIdx, descIdx)+1, len(rec))
		}

		t, err := parseEventDate(rec[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		// extra fields belong to a description with unquoted commas
		desc := rec[descIdx]
		if descIdx == len(records[0])-1 && len(rec) > len(records[0]) {
			desc = strings.Join(rec[descIdx:], ",")
		}

		events = append(events, domain.Event{Date: t, Description: strings.TrimSpace(desc)})
	}
	return events, nil
}

func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := dateparse.ParseAny(s); err == nil {
		return t, nil
	}
	// ParseAny reads slashed dates month first; retry day-first
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: unrecognized format", s)
}

var dayFirstLayouts = []string{"02/01/2006", "2/1/2006", "02.01.2006", "02-01-2006"}
