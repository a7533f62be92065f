package cli

import (
	"io"
	"os"

	"github.com/alnah/go-aidich/internal/batch"
	"github.com/alnah/go-aidich/internal/config"
	"github.com/alnah/go-aidich/internal/endpoint"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Factories for domain objects
	ConfigLoader  ConfigLoader
	ClientFactory ClientFactory
}

// ConfigLoader loads the credential file.
type ConfigLoader interface {
	Load(path string) (config.Config, error)
}

// ClientFactory creates the processor that talks to the endpoint.
type ClientFactory interface {
	NewClient(cfg config.Config, opts ...endpoint.Option) (batch.Processor, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithClientFactory sets the client factory.
func WithClientFactory(f ClientFactory) EnvOption {
	return func(e *Env) {
		e.ClientFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Getenv:        os.Getenv,
		ConfigLoader:  &defaultConfigLoader{},
		ClientFactory: &defaultClientFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load(path string) (config.Config, error) {
	return config.Load(path)
}

// defaultClientFactory implements ClientFactory using the endpoint package.
// The beta flag comes from cfg; opts are applied after it.
type defaultClientFactory struct{}

func (defaultClientFactory) NewClient(cfg config.Config, opts ...endpoint.Option) (batch.Processor, error) {
	opts = append([]endpoint.Option{endpoint.WithBeta(cfg.Beta)}, opts...)
	c, err := endpoint.New(cfg.Username, cfg.Password, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Compile-time interface verification.
var (
	_ ConfigLoader    = (*defaultConfigLoader)(nil)
	_ ClientFactory   = (*defaultClientFactory)(nil)
	_ batch.Processor = (*endpoint.Client)(nil)
)
