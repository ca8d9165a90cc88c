package config

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	ListenAddress    string   `json:"listen_address,omitempty" yaml:"listen_address,omitempty" validate:"required"`
	CORSAllowOrigins []string `json:"cors_allow_origins,omitempty" yaml:"cors_allow_origins,omitempty"`
}

// NewDefaultServerConfig creates default server configuration
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddress:    ":3001",
		CORSAllowOrigins: []string{"*"},
	}
}
