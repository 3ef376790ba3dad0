package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xbt573/pastebin/internal/identifier"
)

type Config struct {
	Listen   string   `mapstructure:"listen"`
	Static   string   `mapstructure:"static"`
	LogLevel string   `mapstructure:"loglevel"`
	Database Database `mapstructure:"database"`
	Settings Settings `mapstructure:"settings"`
}

type Settings struct {
	IDLength  int  `mapstructure:"idlength"`
	BodyLimit uint `mapstructure:"bodylimit"`
}

type Database struct {
	Type DatabaseType `mapstructure:"type"`
	URI  string       `mapstructure:"uri"`

	// Used to build a mongodb+srv URI when URI is empty.
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Cluster  string `mapstructure:"cluster"`

	Name       string `mapstructure:"name"`
	Collection string `mapstructure:"collection"`
}

type DatabaseType string

const (
	MongoDB    DatabaseType = "mongodb"
	PostgreSQL DatabaseType = "postgresql"
	SQLite     DatabaseType = "sqlite"
)

// Environment names kept for deployments that predate the PASTEBIN_ prefix.
var legacyEnv = map[string]string{
	"database.username":   "MONGO_USERNAME",
	"database.password":   "MONGO_PASSWORD",
	"database.cluster":    "MONGO_CLUSTER",
	"database.name":       "DATABASE_NAME",
	"database.collection": "COLLECTION_NAME",
}

var configKeys = []string{
	"listen",
	"static",
	"loglevel",
	"database.type",
	"database.uri",
	"database.username",
	"database.password",
	"database.cluster",
	"database.name",
	"database.collection",
	"settings.idlength",
	"settings.bodylimit",
}

// Config keys that can also be set from the command line.
var flagKeys = map[string]string{
	"listen":              "listen",
	"static":              "static",
	"loglevel":            "loglevel",
	"database.type":       "type",
	"database.uri":        "uri",
	"database.name":       "database",
	"database.collection": "collection",
	"settings.idlength":   "idlength",
	"settings.bodylimit":  "bodylimit",
}

func registerFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Listen, "listen", "l", "0.0.0.0:8030", "Host and port to listen on")
	fs.StringVar(&cfg.Static, "static", "./static", "Directory served for unmatched paths")
	fs.StringVar(&cfg.LogLevel, "loglevel", "info", "Log level (one of debug info warn error)")

	fs.StringVar((*string)(&cfg.Database.Type), "type", string(MongoDB), "Database type (one of mongodb postgresql sqlite)")
	fs.StringVar(&cfg.Database.URI, "uri", "", "Database URI (or file for SQLite)")
	fs.StringVar(&cfg.Database.Name, "database", "pastebin", "Database name (MongoDB)")
	fs.StringVar(&cfg.Database.Collection, "collection", "pastes", "Collection (or table) holding pastes")

	fs.IntVar(&cfg.Settings.IDLength, "idlength", identifier.DefaultLength, "Length of generated paste ids")
	fs.UintVar(&cfg.Settings.BodyLimit, "bodylimit", 4*1024*1024, "Maximum size of body (default to 4 MB, uint)")
}

// loadConfig resolves every key into cfg. Precedence, highest first: flags
// given on the command line, environment, config file, flag defaults.
func loadConfig(v *viper.Viper, configFile string, flags *pflag.FlagSet, cfg *Config) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/pastebin")
		v.AddConfigPath("/etc/pastebin")
	}

	for _, key := range configKeys {
		names := []string{key, "PASTEBIN_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
		if legacy, ok := legacyEnv[key]; ok {
			names = append(names, legacy)
		}

		if err := v.BindEnv(names...); err != nil {
			return err
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
				return fmt.Errorf("bind flag %q: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return v.Unmarshal(cfg)
}

// MongoURI returns URI, or a mongodb+srv URI assembled from the credentials
// and cluster host.
func (d Database) MongoURI() (string, error) {
	if d.URI != "" {
		return d.URI, nil
	}

	if d.Cluster == "" {
		return "", fmt.Errorf("database uri or cluster must be set for %v", MongoDB)
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		Host:     d.Cluster,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	if d.Username != "" {
		u.User = url.UserPassword(d.Username, d.Password)
	}

	return u.String(), nil
}
