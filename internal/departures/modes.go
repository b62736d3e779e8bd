package departures

import "fmt"

// DefaultLimit caps the departure list when a mode doesn't set its own limit.
const DefaultLimit = 5

// Mode is one named query configuration: which stops, direction, and
// continuation a trip must match to count as a departure for that mode.
type Mode struct {
	Name            string
	StopIDs         []string
	DirectionID     *uint32  // nil = don't filter on direction
	RequiredStopIDs []string // trip must still call at one of these after the match
	UseDestination  bool     // name the line after the destination half of the route code
	Limit           int      // 0 = DefaultLimit

	stopSet     map[string]bool
	requiredSet map[string]bool
}

func (m *Mode) hasStop(id string) bool {
	return id != "" && m.stopSet[id]
}

func (m *Mode) requiresStop(id string) bool {
	return id != "" && m.requiredSet[id]
}

// Modes is the set of configured query modes, keyed by name.
type Modes struct {
	byName map[string]*Mode
}

// NewModes builds the mode lookup. Every mode needs a name and at least one
// target stop; duplicate names are rejected rather than silently shadowed.
func NewModes(modes []Mode) (*Modes, error) {
	byName := make(map[string]*Mode, len(modes))
	for i := range modes {
		m := modes[i]
		if m.Name == "" {
			return nil, fmt.Errorf("mode %d: name is required", i)
		}
		if len(m.StopIDs) == 0 {
			return nil, fmt.Errorf("mode %q: at least one stop ID is required", m.Name)
		}
		if _, exists := byName[m.Name]; exists {
			return nil, fmt.Errorf("duplicate mode %q", m.Name)
		}
		m.stopSet = make(map[string]bool, len(m.StopIDs))
		for _, id := range m.StopIDs {
			m.stopSet[id] = true
		}
		m.requiredSet = make(map[string]bool, len(m.RequiredStopIDs))
		for _, id := range m.RequiredStopIDs {
			m.requiredSet[id] = true
		}
		byName[m.Name] = &m
	}
	return &Modes{byName: byName}, nil
}

// Get looks up a mode by name. A miss is ErrUnknownMode so callers can tell
// bad input apart from an empty departure list.
func (ms *Modes) Get(name string) (Mode, error) {
	m, ok := ms.byName[name]
	if !ok {
		return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	return *m, nil
}

// Names lists the configured mode names (unordered).
func (ms *Modes) Names() []string {
	names := make([]string, 0, len(ms.byName))
	for name := range ms.byName {
		names = append(names, name)
	}
	return names
}

// DefaultModes returns the built-in station/direction configurations:
// citybound trains from Springfield Central, and homebound trains from the
// Central platforms that must still call at Springfield Central.
func DefaultModes() []Mode {
	inbound := uint32(0)
	return []Mode{
		{
			Name:        "city",
			StopIDs:     []string{"600822", "600823"},
			DirectionID: &inbound,
		},
		{
			Name:            "home",
			StopIDs:         []string{"600014", "600015"},
			RequiredStopIDs: []string{"600822", "600823"},
			UseDestination:  true,
			Limit:           3,
		},
	}
}
