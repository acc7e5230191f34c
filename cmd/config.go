package cmd

// Config carries every runtime setting of the tracking service. Values come
// from the environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Gmail OAuth credentials for the notification sender. When any of the
	// first three is empty the service falls back to log-only notifications.
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	GmailSender       string

	// Cron spec for the monthly discount recalculation. Empty selects the
	// default schedule.
	DiscountCronSpec string

	MetricsNamespace string
}
