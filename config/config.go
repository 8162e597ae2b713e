package config

import (
	"errors"
	"flag"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr           string
	APIBaseURL     string
	DBUrl          string
	SessionSecret  string
	SessionTTL     time.Duration
	AllowAnonymous bool
	Debug          bool
}

func ParseFlags() (cfg Config, err error) {
	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 80, "listen port number (default 80)")
	flag.StringVar(&cfg.APIBaseURL, "api-url", "", "base URL of the survey API")
	flag.StringVar(&cfg.DBUrl, "db-url", "sessions.sqlite", "path to SQLite3 DB file (default sessions.sqlite)")
	flag.StringVar(&cfg.SessionSecret, "session-secret", "", "secret key for session cookie signing")
	var ttl uint
	flag.UintVar(&ttl, "session-ttl", 60, "session TTL in minutes (default 60)")
	flag.BoolVar(&cfg.AllowAnonymous, "allow-anonymous", false, "allow taking surveys without signing in")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.SessionTTL = time.Duration(ttl) * time.Minute
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if cfg.APIBaseURL == "" {
		err = errors.New("missing parameter -api-url")
	} else if cfg.SessionSecret == "" {
		err = errors.New("missing parameter -session-secret")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
