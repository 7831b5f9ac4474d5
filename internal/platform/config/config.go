package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// AccountingConfig carries the chart-of-accounts codes the ledger poster
// writes against. Missing codes fall back to the standard retail defaults.
type AccountingConfig struct {
	CashAccount      string // Debited on cash sales
	RevenueAccount   string // Credited with the sale total
	COGSAccount      string // Debited with the cost of goods sold
	InventoryAccount string // Credited with the cost of goods sold
}

// LoyaltyConfig controls loyalty point accrual on completed sales.
type LoyaltyConfig struct {
	PointsPerCurrencyUnit decimal.Decimal // Points earned per unit of grand total
}

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Account lockout after repeated failed logins.
	MaxFailedLogins int

	Currency   string
	Accounting AccountingConfig
	Loyalty    LoyaltyConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "twinx-pos")
	viper.SetDefault("MAX_FAILED_LOGINS", 5)
	viper.SetDefault("CURRENCY", "USD")
	viper.SetDefault("ACCOUNT_CASH", "1010")
	viper.SetDefault("ACCOUNT_REVENUE", "4010")
	viper.SetDefault("ACCOUNT_COGS", "5010")
	viper.SetDefault("ACCOUNT_INVENTORY", "1210")
	viper.SetDefault("LOYALTY_POINTS_PER_UNIT", "1")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.MaxFailedLogins = viper.GetInt("MAX_FAILED_LOGINS")
	if cfg.MaxFailedLogins <= 0 {
		cfg.MaxFailedLogins = 5
	}

	cfg.Currency = viper.GetString("CURRENCY")

	cfg.Accounting = AccountingConfig{
		CashAccount:      viper.GetString("ACCOUNT_CASH"),
		RevenueAccount:   viper.GetString("ACCOUNT_REVENUE"),
		COGSAccount:      viper.GetString("ACCOUNT_COGS"),
		InventoryAccount: viper.GetString("ACCOUNT_INVENTORY"),
	}

	pointsStr := viper.GetString("LOYALTY_POINTS_PER_UNIT")
	points, err := decimal.NewFromString(pointsStr)
	if err != nil || points.IsNegative() {
		points = decimal.NewFromInt(1)
		log.Printf("Warning: Invalid value for LOYALTY_POINTS_PER_UNIT ('%s'). Defaulting to %s.\n", pointsStr, points.String())
	}
	cfg.Loyalty = LoyaltyConfig{PointsPerCurrencyUnit: points}

	return cfg, nil
}
