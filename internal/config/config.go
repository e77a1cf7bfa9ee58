package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Configuration struct {
	// DbUrl is the path to the database file. Perhaps change this?
	DbUrl string
	// QueueDbUrl is the path of the database used by the task queue. It should not be the
	// same file as DbUrl, since the queue opens its own connection.
	QueueDbUrl string
	// MigrationsFolder holds the SQL migration files applied on setup.
	MigrationsFolder string
	Port             uint16
	// SessionKey is the secret used by the cookie session manager.
	SessionKey string
	// ReservedUsernames is the set of usernames that cannot be registered or taken through
	// a profile update. It is loaded once at startup and never mutated afterwards.
	ReservedUsernames []string
	// NoTransactions disables multi-statement transactions for the follow and unfollow
	// operations, forcing the sequential best-effort path. Exists for stores that cannot
	// provide multi-document atomicity.
	NoTransactions bool
	// Debug, if true, will make the application log all HTTP requests and other events.
	Debug bool
}

// ReadConfig loads the configuration from warbler.yaml in the working directory, allowing
// every key to be overridden with a WARBLER_ prefixed environment variable.
func ReadConfig() (Configuration, error) {
	v := viper.New()
	v.SetConfigName("warbler")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("warbler")
	v.AutomaticEnv()

	v.SetDefault("dburl", "warbler.db")
	v.SetDefault("sessionkey", "")
	v.SetDefault("queuedburl", "warbler-queue.db")
	v.SetDefault("migrationsfolder", "migrations")
	v.SetDefault("port", 8080)
	v.SetDefault("reservedusernames", []string{"admin", "support", "api", "root"})
	v.SetDefault("notransactions", false)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Configuration{}, err
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return Configuration{}, err
	}
	// The session manager signs cookies with this secret; an empty one must not reach it.
	if cfg.SessionKey == "" {
		return Configuration{}, errors.New("sessionkey must be set in warbler.yaml or WARBLER_SESSIONKEY")
	}
	return cfg, nil
}

// IsReserved reports whether username belongs to the reserved set. The caller is expected
// to lowercase the name first.
func (c *Configuration) IsReserved(username string) bool {
	for _, r := range c.ReservedUsernames {
		if r == username {
			return true
		}
	}
	return false
}
