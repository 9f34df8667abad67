package network

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SystemID identifies one of the independent transport systems
type SystemID string

const (
	Metro    SystemID = "METRO"
	Metrobus SystemID = "METROBUS"
	Trolebus SystemID = "TROLEBUS"
)

// Line is a named route within a system, as an ordered list of station display names
type Line struct {
	ID       string   `yaml:"id" validate:"required"`
	Stations []string `yaml:"stations" validate:"min=1,dive,required"`
}

// System contains the lines of one transport system plus its fixed costs
type System struct {
	ID         SystemID `yaml:"id" validate:"required,oneof=METRO METROBUS TROLEBUS"`
	Name       string   `yaml:"name"`
	HopMinutes float64  `yaml:"hop_minutes" validate:"gt=0"`
	Fare       float64  `yaml:"fare" validate:"gte=0"`
	Lines      []Line   `yaml:"lines" validate:"min=1,dive"`
}

// Network is the root of the static network tables
type Network struct {
	Name                   string   `yaml:"name"`
	Currency               string   `yaml:"currency"`
	TransferPenaltyMinutes float64  `yaml:"transfer_penalty_minutes" validate:"gte=0"`
	MaxDisplay             int      `yaml:"max_display" validate:"gte=0"`
	Systems                []System `yaml:"systems" validate:"min=1,dive"`
}

// Parse decodes and validates a YAML network description
func Parse(data []byte) (*Network, error) {
	var n Network
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to parse network: %w", err)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return &n, nil
}

// Validate checks struct constraints plus uniqueness of system and line ids
func (n *Network) Validate() error {
	v := validator.New()
	if err := v.Struct(n); err != nil {
		return fmt.Errorf("invalid network: %w", err)
	}

	seenSystems := make(map[SystemID]bool, len(n.Systems))
	for _, s := range n.Systems {
		if seenSystems[s.ID] {
			return fmt.Errorf("invalid network: duplicate system %s", s.ID)
		}
		seenSystems[s.ID] = true

		seenLines := make(map[string]bool, len(s.Lines))
		for _, l := range s.Lines {
			if seenLines[l.ID] {
				return fmt.Errorf("invalid network: duplicate line %s in system %s", l.ID, s.ID)
			}
			seenLines[l.ID] = true
		}
	}
	return nil
}

// System returns the system with the given id
func (n *Network) System(id SystemID) (System, bool) {
	for _, s := range n.Systems {
		if s.ID == id {
			return s, true
		}
	}
	return System{}, false
}

// Fares returns the per-entry fare of every system
func (n *Network) Fares() map[SystemID]float64 {
	fares := make(map[SystemID]float64, len(n.Systems))
	for _, s := range n.Systems {
		fares[s.ID] = s.Fare
	}
	return fares
}

// StationNames returns every station display name in table order, without repeats
func (n *Network) StationNames() []string {
	seen := map[string]struct{}{}
	var names []string
	for _, s := range n.Systems {
		for _, l := range s.Lines {
			for _, st := range l.Stations {
				if _, ok := seen[st]; ok {
					continue
				}
				seen[st] = struct{}{}
				names = append(names, st)
			}
		}
	}
	return names
}

// DisplayCap resolves the full-path display cap. A positive override wins over
// the network's own MaxDisplay; a resulting 0 means the path is never capped.
func (n *Network) DisplayCap(override int) int {
	if override > 0 {
		return override
	}
	return n.MaxDisplay
}

// LineCount returns the total number of lines across systems
func (n *Network) LineCount() int {
	total := 0
	for _, s := range n.Systems {
		total += len(s.Lines)
	}
	return total
}
