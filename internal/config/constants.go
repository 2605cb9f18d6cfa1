package config

import "time"

// External service defaults
const (
	DefaultNASABaseURL   = "https://power.larc.nasa.gov/api/temporal/daily/point"
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "gemma2:2b"

	DefaultNASATimeoutSeconds   = 30
	DefaultOllamaTimeoutSeconds = 120
)

// Database pool defaults
const (
	DefaultDBMaxConns    = 25
	DefaultDBMaxConnIdle = 5 * time.Minute
	DefaultDBMaxConnLife = 30 * time.Minute
)

// Auth defaults
const (
	DefaultJWTExpiryHours = 168 // 7 days
)
