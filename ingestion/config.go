package ingestion

import (
	"fmt"
	"time"
)

const (
	DefaultHeaderRows      = 2
	DefaultFreshnessWindow = 24 * time.Hour
	DefaultDistrict        = "Bilinmiyor"
	DefaultAddressHint     = "Bu alana adres tarifi al butonunu kullanınız."
	DefaultSchedule        = "*/10 * * * *"
)

// Layout holds the column offsets of a row triplet.
type Layout struct {
	NameCol   int    `yaml:"nameCol"`
	NeedCols  [4]int `yaml:"needCols"` // material, human help, food, package
	ActiveCol int    `yaml:"activeCol"`
	NoteCol   int    `yaml:"noteCol"`
}

// DefaultLayout is the layout of the Ankara sheet:
// name,active,material,human,food,package,location,note
func DefaultLayout() Layout {
	return Layout{
		NameCol:   0,
		NeedCols:  [4]int{1, 2, 3, 4},
		ActiveCol: 1,
		NoteCol:   0,
	}
}

// Config describes one spreadsheet and the city its rows belong to.
type Config struct {
	City            string        `yaml:"city"`
	SpreadsheetID   string        `yaml:"spreadsheetId"`
	Range           string        `yaml:"range"`
	HeaderRows      int           `yaml:"headerRows"`
	Layout          *Layout       `yaml:"layout"`
	DefaultDistrict string        `yaml:"defaultDistrict"`
	AddressHint     string        `yaml:"addressHint"`
	FreshnessWindow time.Duration `yaml:"freshnessWindow"`
	Schedule        string        `yaml:"schedule"`
}

// WithDefaults fills every unset field.
func (c Config) WithDefaults() Config {
	if c.HeaderRows == 0 {
		c.HeaderRows = DefaultHeaderRows
	}
	if c.Layout == nil {
		l := DefaultLayout()
		c.Layout = &l
	}
	if c.DefaultDistrict == "" {
		c.DefaultDistrict = DefaultDistrict
	}
	if c.AddressHint == "" {
		c.AddressHint = DefaultAddressHint
	}
	if c.FreshnessWindow == 0 {
		c.FreshnessWindow = DefaultFreshnessWindow
	}
	if c.Schedule == "" {
		c.Schedule = DefaultSchedule
	}
	return c
}

func (c Config) Validate() error {
	if c.City == "" {
		return fmt.Errorf("sheet config: city is required")
	}
	if c.HeaderRows < 0 {
		return fmt.Errorf("sheet config %s: headerRows must not be negative", c.City)
	}
	if c.FreshnessWindow < 0 {
		return fmt.Errorf("sheet config %s: freshnessWindow must not be negative", c.City)
	}
	return nil
}
