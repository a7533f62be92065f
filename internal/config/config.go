package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is the credential file looked up in the working directory.
const DefaultPath = "config.cfg"

// Environment variable fallbacks.
const (
	EnvConfigPath = "AIDICH_CONFIG"
	EnvBaseURL    = "AIDICH_BASE_URL"
	EnvOutputDir  = "AIDICH_OUTPUT_DIR"
)

// Sentinel errors for configuration loading.
var (
	// ErrNotFound indicates the credential file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrInvalid indicates the credential file is malformed.
	ErrInvalid = errors.New("invalid config")
)

// Config holds the credentials and flags used for every request.
// It is built once at startup and passed by value.
type Config struct {
	Username string
	Password string
	Beta     bool
}

// String returns a printable form with the password masked.
func (c Config) String() string {
	return fmt.Sprintf("username=%s password=%s activate_beta=%t", c.Username, mask(c.Password), c.Beta)
}

// mask hides a secret while keeping its length visible up to 8 characters.
func mask(s string) string {
	if s == "" {
		return ""
	}
	return strings.Repeat("*", min(len(s), 8))
}

// Load reads and parses the credential file at p.
// Returns ErrNotFound if the file does not exist.
func Load(p string) (Config, error) {
	data, err := os.ReadFile(ExpandPath(p)) // #nosec G304 -- path chosen by the user
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%s: %w", p, ErrNotFound)
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", p, err)
	}
	return cfg, nil
}

// Parse reads "username,password[,activate_beta]".
// The beta flag is enabled only by the literal "true", case-insensitive.
// Fields are trimmed; username and password must be non-empty.
func Parse(s string) (Config, error) {
	fields := strings.Split(strings.TrimSpace(s), ",")
	if len(fields) < 2 {
		return Config{}, fmt.Errorf("expected username,password[,activate_beta]: %w", ErrInvalid)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	cfg := Config{
		Username: fields[0],
		Password: fields[1],
	}
	if cfg.Username == "" {
		return Config{}, fmt.Errorf("username is empty: %w", ErrInvalid)
	}
	if cfg.Password == "" {
		return Config{}, fmt.Errorf("password is empty: %w", ErrInvalid)
	}
	if len(fields) > 2 {
		cfg.Beta = strings.EqualFold(fields[2], "true")
	}
	return cfg, nil
}

// Save writes cfg to p in the format Parse reads.
// The file is created with owner-only permissions since it holds a password.
func Save(p string, cfg Config) error {
	if strings.Contains(cfg.Username, ",") || strings.Contains(cfg.Password, ",") {
		return fmt.Errorf("username and password cannot contain commas: %w", ErrInvalid)
	}
	if _, err := Parse(Format(cfg)); err != nil {
		return err
	}
	p = ExpandPath(p)
	if d := filepath.Dir(p); d != "." {
		if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user config dir
			return fmt.Errorf("cannot create config directory: %w", err)
		}
	}
	if err := os.WriteFile(p, []byte(Format(cfg)+"\n"), 0600); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// Format renders cfg as a single config line.
func Format(cfg Config) string {
	line := cfg.Username + "," + cfg.Password
	if cfg.Beta {
		line += ",true"
	}
	return line
}

// ResolvePath picks the config path: explicit flag, then env, then DefaultPath.
func ResolvePath(flag string, getenv func(string) string) string {
	if flag != "" {
		return flag
	}
	if env := getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultPath
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[2:])
	}
	return p
}
