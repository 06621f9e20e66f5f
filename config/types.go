package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// BackendConfig contains the transit backend connection settings. Durations
// are millisecond integers; zero means "use the client's default".
type BackendConfig struct {
	BaseURL       string `yaml:"baseURL" validate:"omitempty,url"`
	Language      string `yaml:"language" validate:"omitempty"`
	CoordFormat   string `yaml:"coordFormat" validate:"omitempty"`
	TimeoutMS     int    `yaml:"timeoutMS" validate:"gte=0"`
	MinIntervalMS int    `yaml:"minIntervalMS" validate:"gte=0"`
	MaxConcurrent int    `yaml:"maxConcurrent" validate:"gte=0"`
}

// CacheConfig contains per-endpoint response cache lifetimes
type CacheConfig struct {
	StopTTLMS      int `yaml:"stopTTLMS" validate:"gte=0"`
	DepartureTTLMS int `yaml:"departureTTLMS" validate:"gte=0"`
	TripTTLMS      int `yaml:"tripTTLMS" validate:"gte=0"`
}

// RequestLogConfig contains the request audit log settings. An empty path
// disables the log.
type RequestLogConfig struct {
	Path string `yaml:"path"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig     `yaml:"server" validate:"required"`
	Backend    BackendConfig    `yaml:"backend"`
	Cache      CacheConfig      `yaml:"cache"`
	RequestLog RequestLogConfig `yaml:"requestLog"`
}
