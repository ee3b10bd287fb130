package domain

import "fmt"

const unknownDescription = "Unknown"

// AIProvider identifies a language model provider backing a model driver.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// Default server settings.
const (
	DefaultAddr = ":8080"
)

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address (default: :8080).
	Addr string `toml:"addr"`

	// APIToken, when set, is required as a bearer token on every /api request.
	APIToken string `toml:"api_token"`
}

// LogSettings holds logging configuration.
type LogSettings struct {
	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`
}

// DriverSettings declares a driver to register at start-up.
type DriverSettings struct {
	// Name is the registration name inside the marketplace.
	Name string `toml:"name"`

	// Driver is the catalogue kind used to build the driver (e.g. "redis").
	Driver string `toml:"driver"`

	// Active makes this driver the active one after registration.
	Active bool `toml:"active"`

	// Connect calls Connect on the driver once it is active.
	Connect bool `toml:"connect"`

	// Config holds driver-specific options passed to the catalogue builder.
	Config map[string]any `toml:"config"`
}

// Validate checks the declaration carries the fields needed to build a driver.
func (d DriverSettings) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: driver name is required", ErrInvalidInput)
	}
	if d.Driver == "" {
		return fmt.Errorf("%w: driver kind is required for %q", ErrInvalidInput, d.Name)
	}
	if d.Connect && !d.Active {
		return fmt.Errorf("%w: %q sets connect without active", ErrInvalidInput, d.Name)
	}
	return nil
}

// Settings holds all application settings.
type Settings struct {
	Server ServerSettings `toml:"server"`
	Log    LogSettings    `toml:"log"`

	Models     []DriverSettings `toml:"models"`
	MCPServers []DriverSettings `toml:"mcp_servers"`
	Cache      []DriverSettings `toml:"cache"`
	Queue      []DriverSettings `toml:"queue"`
}

// DefaultSettings returns settings with sensible defaults.
// No drivers are declared; they are registered over the API or in the config file.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Addr: DefaultAddr},
	}
}

// Drivers returns the driver declarations for a marketplace.
func (s Settings) Drivers(kind MarketplaceKind) []DriverSettings {
	switch kind {
	case MarketplaceModel:
		return s.Models
	case MarketplaceMCP:
		return s.MCPServers
	case MarketplaceCache:
		return s.Cache
	case MarketplaceQueue:
		return s.Queue
	default:
		return nil
	}
}

// Validate checks every driver declaration and that at most one driver per
// marketplace is marked active.
func (s Settings) Validate() error {
	for _, kind := range MarketplaceKinds() {
		active := ""
		for _, d := range s.Drivers(kind) {
			if err := d.Validate(); err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			if d.Active {
				if active != "" {
					return fmt.Errorf("%w: %s declares both %q and %q active",
						ErrInvalidInput, kind, active, d.Name)
				}
				active = d.Name
			}
		}
	}
	return nil
}
