package cmd

// Config carries the process configuration, loaded from the environment in
// main. Tunables are kept as strings here; parsing with defaults happens in
// the composition root so a missing key falls back to production values
// instead of failing startup.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RabbitHost     string
	RabbitPort     string
	RabbitUser     string
	RabbitPassword string
	RabbitVHost    string

	AdminEmail string

	// Scheduler tunables, all optional.
	SearchTimeout     string // e.g. "3m"
	SearchMaxAttempts string // e.g. "6"
	RetryMaxAttempts  string // e.g. "3"
	RetryMaxAge       string // e.g. "10m"
	RetryPurgeGrace   string // e.g. "5m"
}
