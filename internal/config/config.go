package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the optional YAML config at <home>/config.yaml. Every field has a
// flag or environment fallback, so a missing file is not an error.
type File struct {
	Addr   string `yaml:"addr,omitempty"`    // HTTP listen address, e.g. ":8417"
	APIKey string `yaml:"api_key,omitempty"` // optional; enables API key auth

	Store struct {
		Driver string `yaml:"driver,omitempty"` // "sqlite" (default), "postgres", or "rtdb"
		DSN    string `yaml:"dsn,omitempty"`    // postgres connection string
		URL    string `yaml:"url,omitempty"`    // rtdb base URL
	} `yaml:"store,omitempty"`

	// AdminPassword gates employer login. Empty disables employer login
	// entirely rather than allowing a blank password.
	AdminPassword string `yaml:"admin_password,omitempty"`

	EmailJS struct {
		ServiceID  string `yaml:"service_id,omitempty"`
		TemplateID string `yaml:"template_id,omitempty"`
		PublicKey  string `yaml:"public_key,omitempty"`
	} `yaml:"emailjs,omitempty"`

	Slack struct {
		WebhookURL string `yaml:"webhook_url,omitempty"`
		Channel    string `yaml:"channel,omitempty"`
	} `yaml:"slack,omitempty"`
}

// Path returns the config file path: <home>/config.yaml.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// Load reads <home>/config.yaml. A missing file returns a zero File and no error.
func Load(home string) (*File, error) {
	data, err := os.ReadFile(Path(home))
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes the config file, creating home if needed.
func Save(home string, f *File) error {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(Path(home), data, 0o600)
}
