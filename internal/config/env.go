package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// envPrefix namespaces every variable, e.g. PAPERWALLET_ENGINE.
const envPrefix = "PAPERWALLET"

// Config contains all configuration parameters for the application.
// Note: the export password is prompted at runtime and kept in memory - use GetPasswordBytes()
type Config struct {
	Engine        string `envconfig:"ENGINE" default:"native"`
	Host          string `envconfig:"HOST" default:"127.0.0.1"`
	Port          string `envconfig:"PORT" default:"8080"`
	ExportDir     string `envconfig:"EXPORT_DIR" default:"."`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	QRSize        int    `envconfig:"QR_SIZE" default:"256"`
	VanityWorkers int    `envconfig:"VANITY_WORKERS" default:"1"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.QRSize <= 0 {
		return fmt.Errorf("%s_QR_SIZE must be positive, got %d", envPrefix, c.QRSize)
	}
	if c.VanityWorkers <= 0 {
		return fmt.Errorf("%s_VANITY_WORKERS must be positive, got %d", envPrefix, c.VanityWorkers)
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// ListenAddr returns host:port for the HTTP server
func ListenAddr() string {
	return Get().Host + ":" + Get().Port
}

// GetEngine returns the configured wallet engine name
func GetEngine() string {
	return Get().Engine
}

// GetExportDir returns the directory HTTP exports are confined to
func GetExportDir() string {
	return Get().ExportDir
}

var passwordBytes []byte

// PromptForPassword prompts the user for the export password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
func PromptForPassword() error {
	raw, err := ReadSecret("Enter export password: ")
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	clear(passwordBytes)
	passwordBytes = raw
	return nil
}

// GetPasswordBytes returns a copy of the password stored by PromptForPassword.
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: start with --encrypt to enter one")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}

// ForgetPassword wipes the stored password.
func ForgetPassword() {
	clear(passwordBytes)
	passwordBytes = nil
}

// ReadSecret prints prompt to stderr and reads one line from stdin.
// On a terminal the input is not echoed. Caller must zero the result.
func ReadSecret(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		defer fmt.Fprintln(os.Stderr)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return raw, nil
	}

	// Piped input, e.g. entropy then password from another program
	return readLine(os.Stdin)
}

// readLine reads one line from r without read-ahead, so the next call sees
// the next line. CR/LF are dropped; every intermediate buffer is wiped.
func readLine(r io.Reader) ([]byte, error) {
	var one [1]byte
	defer clear(one[:])

	line := make([]byte, 0, 64)
	for {
		n, err := r.Read(one[:])
		if n == 1 {
			if one[0] == '\n' {
				break
			}
			if len(line) == cap(line) {
				grown := make([]byte, len(line), 2*cap(line))
				copy(grown, line)
				clear(line)
				line = grown
			}
			line = append(line, one[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(line) > 0 {
				break
			}
			clear(line)
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}

	if n := len(line); n > 0 && line[n-1] == '\r' {
		line[n-1] = 0
		line = line[:n-1]
	}
	return line, nil
}
