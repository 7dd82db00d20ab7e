package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-d server database DSN
//	-c/-config json file path with configs
//	-password-hash-key password hash key
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout server request timeout (e.g., "30s", "1m")
//	-version application version
//	-remote remote store address used by the client
//	-remote-timeout client request timeout
//	-local-db client ledger path or "memory"
//	-sync-interval period of the background sync job
//	-sync-debounce quiet window before a sync cycle
//	-max-backoff retry delay cap after failed cycles
//	-connectivity-interval period of the remote health probe
//	-log-file client log file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var passwordHashKey string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var version string
	var remoteAddress string
	var remoteTimeout time.Duration
	var localDB string
	var syncInterval, syncDebounce, maxBackoff, connectivityInterval time.Duration
	var logFile string

	fs := flag.NewFlagSet("go-finance-keeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&passwordHashKey, "password-hash-key", "", "Password hash key")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&version, "version", "", "Application version")
	fs.StringVar(&remoteAddress, "remote", "", "Remote store address")
	fs.DurationVar(&remoteTimeout, "remote-timeout", 0, "Remote request timeout")
	fs.StringVar(&localDB, "local-db", "", "Local ledger path or memory")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period")
	fs.DurationVar(&syncDebounce, "sync-debounce", 0, "Sync debounce window")
	fs.DurationVar(&maxBackoff, "max-backoff", 0, "Maximum retry delay")
	fs.DurationVar(&connectivityInterval, "connectivity-interval", 0, "Health probe period")
	fs.StringVar(&logFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			PasswordHashKey: passwordHashKey,
			TokenSignKey:    tokenSignKey,
			TokenIssuer:     tokenIssuer,
			TokenDuration:   tokenDuration,
			Version:         version,
		},
		Storage: Storage{
			DB:       DB{DSN: databaseDSN},
			ClientDB: ClientDB{DSN: localDB},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			RequestTimeout: remoteTimeout,
		},
		Workers: Workers{
			SyncInterval:         syncInterval,
			SyncDebounce:         syncDebounce,
			MaxBackoff:           maxBackoff,
			ConnectivityInterval: connectivityInterval,
		},
		Log:          Log{File: logFile},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// An unset address renders as an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
