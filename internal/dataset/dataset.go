// Package dataset loads the seed data the live dashboard starts from.
package dataset

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/workshop-hub-api/internal/models"
)

//go:embed workshop.yaml
var embedded []byte

// Dataset is the full seed: roster, modules, feeds and canned strings.
type Dataset struct {
	Workshop       models.Workshop      `yaml:"workshop"`
	Participants   []models.Participant `yaml:"participants"`
	Modules        []models.Module      `yaml:"modules"`
	Activities     []models.Activity    `yaml:"activities"`
	ActivityEvents []string             `yaml:"activityEvents"`
	Summary        []string             `yaml:"summary"`
	SummaryPoints  []string             `yaml:"summaryPoints"`
	Chat           models.ChatScript    `yaml:"chat"`
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return Parse(embedded)
}

// Load reads a dataset file, falling back to the embedded one when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	ds.normalise()
	return &ds, nil
}

func (d *Dataset) validate() error {
	seen := make(map[int]struct{}, len(d.Participants))
	for _, p := range d.Participants {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("dataset: duplicate participant id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Progress < 0 || p.Progress > models.MaxProgress {
			return fmt.Errorf("dataset: participant %d progress %d out of range", p.ID, p.Progress)
		}
		if p.Status != models.ParticipantActive && p.Status != models.ParticipantIdle {
			return fmt.Errorf("dataset: participant %d has unknown status %q", p.ID, p.Status)
		}
	}
	current := 0
	for _, m := range d.Modules {
		if m.Current {
			current++
		}
	}
	if current > 1 {
		return fmt.Errorf("dataset: %d modules marked current, at most one allowed", current)
	}
	if len(d.ActivityEvents) == 0 {
		return fmt.Errorf("dataset: activityEvents must not be empty")
	}
	if len(d.Chat.Generic) == 0 {
		return fmt.Errorf("dataset: chat.generic must not be empty")
	}
	return nil
}

// normalise fills derived module progress and trims oversized feeds.
func (d *Dataset) normalise() {
	for i := range d.Modules {
		if d.Modules[i].Completed {
			d.Modules[i].Progress = models.MaxProgress
		}
	}
	if len(d.Activities) > models.ActivityFeedCapacity {
		d.Activities = d.Activities[:models.ActivityFeedCapacity]
	}
	if len(d.Summary) > models.SummaryCapacity {
		d.Summary = d.Summary[:models.SummaryCapacity]
	}
}
