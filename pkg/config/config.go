// Package config is for library settings that are unmarshalled
// from Viper (see: /cmd/peptdeep/cmd)
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

//go:embed settings.yaml
var defaultSettings []byte

//go:embed proteases.yaml
var proteaseTable []byte

// DigestConfig settings about protein digestion
type DigestConfig struct {
	// protease name from the protease table, or a cleavage regex
	Protease string `mapstructure:"protease"`

	// the number of cleavage sites a peptide may skip
	MaxMissedCleavages int `mapstructure:"max-missed-cleavages"`

	MinLength int `mapstructure:"peptide-length-min"`
	MaxLength int `mapstructure:"peptide-length-max"`

	// enumerate every substring within the length window instead of
	// cleaving with the protease
	Exhaustive bool `mapstructure:"exhaustive"`

	// digest I as L
	IToL bool `mapstructure:"i-to-l"`
}

// ModConfig settings about modifications, written as "Name@Site"
type ModConfig struct {
	Fixed    []string `mapstructure:"fix-mods"`
	Variable []string `mapstructure:"var-mods"`

	// the maximum number of variable modifications on one peptide
	MaxVarMods int `mapstructure:"max-var-mod-num"`

	// the maximum number of modification assignments per peptide,
	// the unmodified form included
	MaxCombinations int `mapstructure:"max-mod-combinations"`
}

// PrecursorConfig is settings for charge states and the m/z window
type PrecursorConfig struct {
	ChargeMin int     `mapstructure:"charge-min"`
	ChargeMax int     `mapstructure:"charge-max"`
	MZMin     float64 `mapstructure:"mz-min"`
	MZMax     float64 `mapstructure:"mz-max"`
}

// DecoyConfig is for decoy generation
type DecoyConfig struct {
	// "", pseudo_reverse, diann or shuffle
	Method string `mapstructure:"method"`

	// seed for the shuffle method
	Seed uint64 `mapstructure:"seed"`
}

// Config is the root-level settings struct and is a mix
// of settings available in settings.yaml and those
// available from the command line
type Config struct {
	Digest    DigestConfig    `mapstructure:"digest"`
	Mods      ModConfig       `mapstructure:"modifications"`
	Precursor PrecursorConfig `mapstructure:"precursor"`
	Decoy     DecoyConfig     `mapstructure:"decoy"`
}

// Load reads the embedded defaults into v, merges the settings file at path
// (if any) and unmarshals the result. Flags bound to v take precedence.
func Load(v *viper.Viper, path string) (Config, error) {
	var c Config

	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultSettings)); err != nil {
		return c, fmt.Errorf("failed to read default settings: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return c, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode settings: %w", err)
	}

	if err := c.Validate(); err != nil {
		return c, err
	}

	return c, nil
}

// Default returns the embedded default settings.
func Default() Config {
	c, err := Load(viper.New(), "")
	if err != nil {
		panic(fmt.Sprintf("embedded settings are invalid: %v", err))
	}
	return c
}

// Validate checks that the settings describe a usable library.
func (c Config) Validate() error {
	var errs []string

	d := c.Digest
	if !d.Exhaustive && d.Protease == "" {
		errs = append(errs, "digest.protease is required unless digest.exhaustive is set")
	}
	if d.MaxMissedCleavages < 0 {
		errs = append(errs, "digest.max-missed-cleavages must be non-negative")
	}
	if d.MinLength < 1 || d.MaxLength < d.MinLength {
		errs = append(errs, fmt.Sprintf("invalid peptide length range [%d, %d]", d.MinLength, d.MaxLength))
	}

	m := c.Mods
	if m.MaxVarMods < 0 {
		errs = append(errs, "modifications.max-var-mod-num must be non-negative")
	}
	if m.MaxCombinations < 1 {
		errs = append(errs, "modifications.max-mod-combinations must be at least 1")
	}

	p := c.Precursor
	if p.ChargeMin < 1 || p.ChargeMax < p.ChargeMin {
		errs = append(errs, fmt.Sprintf("invalid charge range [%d, %d]", p.ChargeMin, p.ChargeMax))
	}
	if p.MZMax < p.MZMin {
		errs = append(errs, fmt.Sprintf("invalid m/z range [%g, %g]", p.MZMin, p.MZMax))
	}

	switch c.Decoy.Method {
	case "", "pseudo_reverse", "diann", "shuffle":
	default:
		errs = append(errs, fmt.Sprintf("unknown decoy method %q", c.Decoy.Method))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Proteases returns the protease name to cleavage regex table. Names are
// lower case.
func Proteases() (map[string]string, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(proteaseTable)); err != nil {
		return nil, fmt.Errorf("failed to read protease table: %w", err)
	}

	table := make(map[string]string)
	for _, name := range v.AllKeys() {
		table[name] = v.GetString(name)
	}
	return table, nil
}

// ProteaseNames returns the sorted protease names.
func ProteaseNames(table map[string]string) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
