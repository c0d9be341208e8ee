package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreSQLite = "sqlite"
)

var reLocalhost = regexp.MustCompile(`^0\.0\.0\.0`)

type Config struct {
	Addr          string
	DBUrl         string
	AdminUser     string
	AdminPassword string
	SessionSecret string
	SessionStore  string
	SessionTTL    time.Duration
	SecureCookie  bool
	TokenSecret   string
	TokenTTL      time.Duration
	Debug         bool
}

// ParseFlags loads an optional .env file from the working directory,
// then reads the command line. Every flag defaults to its QSURVEY_* variable.
func ParseFlags() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse(os.Args[1:], os.Getenv)
}

func Parse(args []string, getenv func(string) string) (cfg Config, err error) {
	env := envReader{getenv}
	fs := flag.NewFlagSet("survey-box", flag.ContinueOnError)

	var host string
	fs.StringVar(&host, "host", env.get("QSURVEY_HOST", "0.0.0.0"), "listen host name")
	var port uint
	fs.UintVar(&port, "port", env.getUint("QSURVEY_PORT", 5000), "listen port number")
	fs.StringVar(&cfg.DBUrl, "db-url", env.get("QSURVEY_DB_URL", "survey.sqlite"), "path to SQLite3 DB file")
	fs.StringVar(&cfg.AdminUser, "admin-user", env.get("QSURVEY_ADMIN_USER", "admin"), "admin user name")
	fs.StringVar(&cfg.AdminPassword, "admin-password", env.get("QSURVEY_ADMIN_PASSWORD", ""), "admin password")
	fs.StringVar(&cfg.SessionSecret, "session-secret", env.get("QSURVEY_SESSION_SECRET", ""), "secret key for signing session cookies")
	fs.StringVar(&cfg.SessionStore, "session-store", env.get("QSURVEY_SESSION_STORE", SessionStoreMemory), "session store backend (memory|sqlite)")
	var sessionTTL uint
	fs.UintVar(&sessionTTL, "session-ttl", env.getUint("QSURVEY_SESSION_TTL", 43200), "session cookie TTL in seconds")
	fs.BoolVar(&cfg.SecureCookie, "secure-cookie", env.getBool("QSURVEY_SECURE_COOKIE", false), "only send the session cookie over HTTPS")
	fs.StringVar(&cfg.TokenSecret, "token-secret", env.get("QSURVEY_TOKEN_SECRET", ""), "secret key for API token encryption (default: session secret)")
	var tokenTTL uint
	fs.UintVar(&tokenTTL, "token-ttl", env.getUint("QSURVEY_TOKEN_TTL", 120), "API token TTL in seconds")
	fs.BoolVar(&cfg.Debug, "debug", env.getBool("QSURVEY_DEBUG", false), "log at DEBUG level")

	err = fs.Parse(args)
	if err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.SessionTTL = time.Duration(sessionTTL) * time.Second
	cfg.TokenTTL = time.Duration(tokenTTL) * time.Second
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = cfg.SessionSecret
	}

	switch {
	case port == 0 || port > 65535:
		err = fmt.Errorf("invalid port %d", port)
	case cfg.AdminPassword == "":
		err = errors.New("missing parameter -admin-password")
	case cfg.SessionSecret == "":
		err = errors.New("missing parameter -session-secret")
	case cfg.SessionStore != SessionStoreMemory && cfg.SessionStore != SessionStoreSQLite:
		err = fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = reLocalhost.ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

type envReader struct {
	getenv func(string) string
}

func (e envReader) get(key, fallback string) string {
	if v := e.getenv(key); v != "" {
		return v
	}
	return fallback
}

func (e envReader) getUint(key string, fallback uint) uint {
	v, err := strconv.ParseUint(e.getenv(key), 10, 0)
	if err != nil {
		return fallback
	}
	return uint(v)
}

func (e envReader) getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(e.getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
