package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/blogkeeper/internal/flagx"
)

var knownFlags = []string{"-a", "-storage", "-d", "-m", "-n", "-s", "-k", "-t", "-r", "-l", "-origins", "-o"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        HTTP bind address (e.g. ":3000")
//	-storage string  postgres, mongo or memory
//	-d string        PostgreSQL DSN
//	-m string        MongoDB URI
//	-n string        MongoDB database name
//	-s string        access token secret
//	-k string        refresh token secret
//	-t int           access token validity, minutes
//	-r int           refresh token validity, minutes
//	-l string        log level
//	-origins string  comma separated CORS origins
//	-o string        OTLP/HTTP endpoint
//
// Unknown arguments are filtered out with flagx.FilterArgs so that -c and
// tool-specific flags can share the command line.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.Storage, "storage", config.Storage, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "mongo URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "mongo database")
	fs.StringVar(&config.AccessTokenSecret, "s", config.AccessTokenSecret, "access token secret")
	fs.StringVar(&config.RefreshTokenSecret, "k", config.RefreshTokenSecret, "refresh token secret")

	accessMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshMinutes := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	origins := fs.String("origins", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.OTelEndpoint, "o", config.OTelEndpoint, "OTLP/HTTP endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("config: parse flags: %w", err)
	}

	// flags carry whole minutes; keep sub-minute values from other layers
	// unless the flag was actually given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessMinutes) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshMinutes) * time.Minute
		case "origins":
			config.AllowedOrigins = trimAll(strings.Split(*origins, ","))
		}
	})

	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
