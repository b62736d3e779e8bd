package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"nexttrain/internal/departures"
)

// modesFile is the on-disk shape of a modes.yml. All modes share one record
// type with optional fields rather than divergent per-mode shapes.
type modesFile struct {
	Modes []modeEntry `yaml:"modes" validate:"required,min=1,dive"`
}

type modeEntry struct {
	Name            string   `yaml:"name" validate:"required"`
	StopIDs         []string `yaml:"stopIds" validate:"required,min=1,dive,required"`
	DirectionID     *uint32  `yaml:"directionId"`
	RequiredStopIDs []string `yaml:"requiredStopIds" validate:"omitempty,dive,required"`
	UseDestination  bool     `yaml:"useDestination"`
	Limit           int      `yaml:"limit" validate:"gte=0,lte=20"`
}

// LoadModes reads and validates a modes.yml, replacing the built-in modes
// wholesale. An empty path yields the defaults.
func LoadModes(path string) (*departures.Modes, error) {
	if path == "" {
		return departures.NewModes(departures.DefaultModes())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read modes file: %w", err)
	}
	var mf modesFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse modes file: %w", err)
	}
	if err := validator.New().Struct(mf); err != nil {
		return nil, fmt.Errorf("validate modes file: %w", err)
	}

	modes := make([]departures.Mode, 0, len(mf.Modes))
	for _, e := range mf.Modes {
		modes = append(modes, departures.Mode{
			Name:            e.Name,
			StopIDs:         e.StopIDs,
			DirectionID:     e.DirectionID,
			RequiredStopIDs: e.RequiredStopIDs,
			UseDestination:  e.UseDestination,
			Limit:           e.Limit,
		})
	}
	return departures.NewModes(modes)
}
