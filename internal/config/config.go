package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/nexonoperations/tutorbill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Business   BusinessConfig   `validate:"required"`
	Billing    BillingConfig    `validate:"required"`
	Typst      TypstConfig
	DynamoDB   DynamoDBConfig
	S3         S3Config
	Email      EmailConfig
	Sentry     SentryConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// BusinessConfig is the business profile printed on every invoice: the static
// sender identity and banking blocks, and the payment terms. It is
// configuration rather than code so the renderer is reusable per tenant.
type BusinessConfig struct {
	Name            string     `validate:"required"`
	Phone           string     `mapstructure:"phone"`
	Email           string     `mapstructure:"email"`
	Location        string     `mapstructure:"location"`
	Bank            BankConfig `mapstructure:"bank"`
	PaymentTermDays int        `mapstructure:"payment_term_days" validate:"gt=0"`
}

type BankConfig struct {
	Name          string `mapstructure:"name"`
	BranchCode    string `mapstructure:"branch_code"`
	AccountName   string `mapstructure:"account_name"`
	AccountNumber string `mapstructure:"account_number"`
}

// BillingConfig holds the flat hourly rates and the invoice formatting locale.
type BillingConfig struct {
	IndividualRate float64      `mapstructure:"individual_rate" validate:"gt=0"`
	GroupRate      float64      `mapstructure:"group_rate" validate:"gt=0"`
	Locale         types.Locale `mapstructure:"locale"`
}

// IndividualRateDecimal returns the individual hourly rate as a decimal.
func (c BillingConfig) IndividualRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.IndividualRate)
}

// GroupRateDecimal returns the group hourly rate as a decimal.
func (c BillingConfig) GroupRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.GroupRate)
}

// TypstConfig points the PDF compiler at its binary, fonts, templates and
// scratch directory for generated artifacts.
type TypstConfig struct {
	BinaryPath  string `mapstructure:"binary_path"`
	FontDir     string `mapstructure:"font_dir"`
	TemplateDir string `mapstructure:"template_dir"`
	OutputDir   string `mapstructure:"output_dir"`
}

// DynamoDBConfig holds configuration for the document store
type DynamoDBConfig struct {
	InUse            bool   `mapstructure:"in_use"`
	Region           string `mapstructure:"region"`
	StudentTableName string `mapstructure:"student_table_name"`
	SessionTableName string `mapstructure:"session_table_name"`
}

type S3Config struct {
	Enabled             bool         `mapstructure:"enabled"`
	Region              string       `mapstructure:"region"`
	InvoiceBucketConfig BucketConfig `mapstructure:"invoice_bucket_config"`
}

type BucketConfig struct {
	Bucket                string `mapstructure:"bucket"`
	KeyPrefix             string `mapstructure:"key_prefix"`
	PresignExpiryDuration string `mapstructure:"presign_expiry_duration"`
}

type EmailConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address"`
	ReplyTo     string `mapstructure:"reply_to"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tutorbill")

	v.SetEnvPrefix("TUTORBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))

	v.SetDefault("billing.individual_rate", 360.0)
	v.SetDefault("billing.group_rate", 230.0)
	v.SetDefault("billing.locale.date_layout", "02/01/2006")
	v.SetDefault("billing.locale.currency_symbol", "R")
	v.SetDefault("billing.locale.individual_label", "Individueel")
	v.SetDefault("billing.locale.group_label", "Groep")

	v.SetDefault("business.payment_term_days", 7)

	v.SetDefault("typst.binary_path", "typst")
	v.SetDefault("typst.font_dir", "assets/fonts")
	v.SetDefault("typst.template_dir", "assets/typst-templates")

	v.SetDefault("dynamodb.student_table_name", "tutorbill-students")
	v.SetDefault("dynamodb.session_table_name", "tutorbill-sessions")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development and
// tests; no external collaborators are enabled.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Business: BusinessConfig{
			Name:            "Clearwater Tutoring",
			Phone:           "082 555 0147",
			Email:           "accounts@clearwatertutoring.co.za",
			Location:        "Pretoria",
			PaymentTermDays: 7,
			Bank: BankConfig{
				Name:          "FNB",
				BranchCode:    "250655",
				AccountName:   "Clearwater Tutoring",
				AccountNumber: "62000000001",
			},
		},
		Billing: BillingConfig{
			IndividualRate: 360,
			GroupRate:      230,
			Locale:         types.DefaultLocale(),
		},
		Typst: TypstConfig{
			BinaryPath:  "typst",
			FontDir:     "assets/fonts",
			TemplateDir: "assets/typst-templates",
		},
	}
}
