package config

import (
	"fmt"
	"os"

	"go-afetyardim/ingestion"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort        = "8080"
	ankaraSpreadsheet  = "1TT7DbGj6F6BN10PS0PkSLAXXLyX9i-ILlBEs70X-Lac"
	ankaraRange        = "A1:H150"
	defaultServiceName = "afetyardim"
)

type Config struct {
	Port                string
	ServiceName         string
	GoogleAPIKey        string
	FirebaseCredentials string
	MapsCredentials     string
	LogLevel            string
	LogFormat           string
	Sheets              []ingestion.Config
}

type sheetsFile struct {
	Sheets []ingestion.Config `yaml:"sheets"`
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getenv("PORT", defaultPort),
		ServiceName:         getenv("SERVICE_NAME", defaultServiceName),
		GoogleAPIKey:        os.Getenv("GOOGLE_API_KEY"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS"),
		MapsCredentials:     os.Getenv("MAPS_CREDENTIALS"),
		LogLevel:            getenv("LOG_LEVEL", "info"),
		LogFormat:           getenv("LOG_FORMAT", "json"),
	}

	if cfg.FirebaseCredentials == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS is not set")
	}

	if path := os.Getenv("SHEETS_CONFIG"); path != "" {
		sheets, err := LoadSheets(path)
		if err != nil {
			return nil, err
		}
		cfg.Sheets = sheets
	} else {
		cfg.Sheets = DefaultSheets()
	}
	return cfg, nil
}

// DefaultSheets is the Ankara sheet the service was started with.
func DefaultSheets() []ingestion.Config {
	return []ingestion.Config{
		ingestion.Config{
			City:          "Ankara",
			SpreadsheetID: ankaraSpreadsheet,
			Range:         ankaraRange,
		}.WithDefaults(),
	}
}

func LoadSheets(path string) ([]ingestion.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheets config %s: %w", path, err)
	}
	return ParseSheets(data)
}

// ParseSheets decodes the sheets YAML document, applies defaults and
// validates every entry. Cities must be unique.
func ParseSheets(data []byte) ([]ingestion.Config, error) {
	var f sheetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse sheets config: %w", err)
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("sheets config has no sheets")
	}

	seen := make(map[string]bool, len(f.Sheets))
	out := make([]ingestion.Config, 0, len(f.Sheets))
	for _, s := range f.Sheets {
		s = s.WithDefaults()
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if s.SpreadsheetID == "" {
			return nil, fmt.Errorf("sheet config %s: spreadsheetId is required", s.City)
		}
		if seen[s.City] {
			return nil, fmt.Errorf("sheet config %s: duplicate city", s.City)
		}
		seen[s.City] = true
		out = append(out, s)
	}
	return out, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
