// Package filter provides precursor filtering functions
package filter

import (
	"slices"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

// Config holds filtering configuration
type Config struct {
	MZMin         float64  // Drop precursors below this m/z (0 = no lower bound)
	MZMax         float64  // Drop precursors above this m/z (0 = no upper bound)
	MaxMods       int      // Drop precursors with more modifications (0 = no limit)
	LabelChannels []string // Keep only specified label channels (nil = all)
}

// Apply applies all configured filters to rows. Rows are filtered in place and
// the kept prefix is returned.
func (c *Config) Apply(rows []core.Precursor) []core.Precursor {
	// Filter by label channel first
	if len(c.LabelChannels) > 0 {
		rows = c.filterByChannel(rows)
	}

	if c.MaxMods > 0 {
		rows = c.filterByModCount(rows)
	}

	if c.MZMin > 0 || c.MZMax > 0 {
		rows = c.filterByMZ(rows)
	}

	return rows
}

// Keep reports whether a single precursor passes the m/z window.
func (c *Config) Keep(p *core.Precursor) bool {
	if c.MZMin > 0 && p.PrecursorMZ < c.MZMin {
		return false
	}
	if c.MZMax > 0 && p.PrecursorMZ > c.MZMax {
		return false
	}
	return true
}

// filterByChannel keeps only rows of the specified label channels
func (c *Config) filterByChannel(rows []core.Precursor) []core.Precursor {
	return slices.DeleteFunc(rows, func(p core.Precursor) bool {
		return !slices.Contains(c.LabelChannels, p.LabelChannel)
	})
}

// filterByModCount removes rows carrying more than MaxMods modifications
func (c *Config) filterByModCount(rows []core.Precursor) []core.Precursor {
	return slices.DeleteFunc(rows, func(p core.Precursor) bool {
		return len(core.SplitField(p.Mods)) > c.MaxMods
	})
}

// filterByMZ removes rows outside the precursor m/z window
func (c *Config) filterByMZ(rows []core.Precursor) []core.Precursor {
	return slices.DeleteFunc(rows, func(p core.Precursor) bool {
		return !c.Keep(&p)
	})
}

// RemoveDecoys removes decoy rows
func RemoveDecoys(rows []core.Precursor) []core.Precursor {
	return slices.DeleteFunc(rows, func(p core.Precursor) bool {
		return p.Decoy
	})
}
