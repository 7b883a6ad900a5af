package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Store holds the settings needed to reach the spreadsheet.
type Store struct {
	// Path to the Google service-account credentials JSON.
	CredentialsFile string
	// ID of the spreadsheet holding the program tables.
	SpreadsheetID string
}

type Datastore struct {
	Filename string
	Store    Store
}

// Save writes the current config out to a toml file.
func (d *Datastore) Save() error {
	b, err := toml.Marshal(d.Store)
	if err != nil {
		return err
	}
	return os.WriteFile(d.Filename, b, 0644)
}

// Load reads the current config from a toml file.
func (d *Datastore) Load() error {
	b, err := os.ReadFile(d.Filename)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, &d.Store)
}

// NewDatastore loads filename, creating it on first run. Environment
// variables override the file so container deployments need no config file.
func NewDatastore(filename string) (*Datastore, error) {
	d := &Datastore{
		Filename: filename,
	}
	if err := d.Load(); err != nil {
		if os.IsNotExist(err) {
			if err := d.Save(); err != nil {
				return nil, err
			}
		}
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		d.Store.CredentialsFile = v
	}
	if v := os.Getenv("SPREADSHEET_ID"); v != "" {
		d.Store.SpreadsheetID = v
	}
	return d, nil
}
