package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the service configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	ServiceBus ServiceBusConfig
	NewRelic   NewRelicConfig
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port            int
	Mode            string // debug, release, test
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConn  int
	MaxIdle  int
	MaxLife  time.Duration
	Debug    bool
}

// AuthConfig controls bearer-token verification on the API group
type AuthConfig struct {
	Required  bool
	JWTSecret string
}

// ServiceBusConfig holds the Azure Service Bus configuration
type ServiceBusConfig struct {
	ConnectionString string
	QueueName        string
}

// NewRelicConfig holds the New Relic configuration
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// InitConfig initializes the configuration using Viper
func InitConfig(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/electronica")
		viper.SetConfigName("config")
	}

	// ELECTRONICA_SERVER_PORT overrides server.port
	viper.SetEnvPrefix("ELECTRONICA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("No config file found, using defaults and environment variables")
		} else {
			return errors.Wrap(err, "error reading config file")
		}
	} else {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	return nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("server.port", 7000)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.cors_origins", []string{"*"})
	viper.SetDefault("server.shutdown_timeout", "15s")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "electronica")
	viper.SetDefault("database.password", "electronica")
	viper.SetDefault("database.dbname", "electronica")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_conn", 25)
	viper.SetDefault("database.max_idle", 5)
	viper.SetDefault("database.max_life", "30m")
	viper.SetDefault("database.debug", false)

	viper.SetDefault("auth.required", false)
	viper.SetDefault("auth.jwt_secret", "")

	// no default connection string, events fall back to the log publisher
	viper.SetDefault("servicebus.queuename", "electronica-events")

	viper.SetDefault("newrelic.appname", "Electronica Backend Local")
	viper.SetDefault("newrelic.enabled", false)
}

// Load loads the configuration
func Load() (*Config, error) {
	serverConfig := ServerConfig{
		Port:            viper.GetInt("server.port"),
		Mode:            viper.GetString("server.mode"),
		CORSOrigins:     viper.GetStringSlice("server.cors_origins"),
		ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
	}

	dbConfig := DatabaseConfig{
		Host:     viper.GetString("database.host"),
		Port:     viper.GetInt("database.port"),
		User:     viper.GetString("database.user"),
		Password: viper.GetString("database.password"),
		DBName:   viper.GetString("database.dbname"),
		SSLMode:  viper.GetString("database.sslmode"),
		MaxConn:  viper.GetInt("database.max_conn"),
		MaxIdle:  viper.GetInt("database.max_idle"),
		MaxLife:  viper.GetDuration("database.max_life"),
		Debug:    viper.GetBool("database.debug"),
	}

	authConfig := AuthConfig{
		Required:  viper.GetBool("auth.required"),
		JWTSecret: viper.GetString("auth.jwt_secret"),
	}
	if authConfig.Required && authConfig.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret must be set when auth.required is true")
	}

	serviceBusConfig := ServiceBusConfig{
		ConnectionString: viper.GetString("servicebus.connectionstring"),
		QueueName:        viper.GetString("servicebus.queuename"),
	}

	newRelicConfig := NewRelicConfig{
		AppName:    viper.GetString("newrelic.appname"),
		LicenseKey: viper.GetString("newrelic.licensekey"),
		Enabled:    viper.GetBool("newrelic.enabled"),
	}

	return &Config{
		Server:     serverConfig,
		Database:   dbConfig,
		Auth:       authConfig,
		ServiceBus: serviceBusConfig,
		NewRelic:   newRelicConfig,
	}, nil
}
