package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSecurityDepositCents is the flat deposit added on top of the
// rental amount when sizing a card hold ($500).
const DefaultSecurityDepositCents int64 = 50000

// Config collects every environment-driven setting at startup. Business
// logic receives values from here and never reads the environment itself.
type Config struct {
	Port        string
	DatabaseURL string

	StripeSecretKey     string
	StripeWebhookSecret string

	JWTSecret string

	SecurityDepositCents int64

	// PublicBaseURL is used to build guest-facing status-lookup links.
	PublicBaseURL  string
	AllowedOrigins []string

	// BookingLocation is the operator's local calendar used to compute
	// "today" for availability. Defaults to America/Chicago.
	BookingLocation *time.Location

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// Load reads the environment into a Config, applying defaults.
func Load() *Config {
	cfg := &Config{
		Port:                 getenv("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		SecurityDepositCents: getenvInt64("SECURITY_DEPOSIT_CENTS", DefaultSecurityDepositCents),
		PublicBaseURL:        getenv("PUBLIC_BASE_URL", "http://localhost:3000"),
		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail:    os.Getenv("SENDGRID_FROM_EMAIL"),
		SendGridFromName:     getenv("SENDGRID_FROM_NAME", "Space City Rentals"),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:     os.Getenv("TWILIO_FROM_NUMBER"),
	}

	cfg.AllowedOrigins = []string{"*"}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	tz := getenv("BOOKING_TIMEZONE", "America/Chicago")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Invalid BOOKING_TIMEZONE %q, falling back to local time: %v", tz, err)
		loc = time.Local
	}
	cfg.BookingLocation = loc

	return cfg
}

// DemoMode reports whether the service runs against fixture data because
// no database is configured.
func (c *Config) DemoMode() bool {
	return c.DatabaseURL == ""
}

// PaymentsEnabled reports whether the Stripe hold flow is active. When
// false, bookings are created directly with no payment fields populated.
func (c *Config) PaymentsEnabled() bool {
	return c.StripeSecretKey != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
