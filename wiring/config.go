package wiring

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config names the classes the reflective strategy instantiates.
type Config struct {
	DataSource string `yaml:"datasource" validate:"required"`
	Calculator string `yaml:"calculator" validate:"required"`
}

// ConfigLoader decodes one config file format.
type ConfigLoader interface {
	Load(r io.Reader, cfg *Config) error
	Extensions() []string
}

var (
	ErrUnsupportedFormat = errors.New("config: unsupported format")

	configLoaders = []ConfigLoader{TextLoader{}, YAMLLoader{}}
	validate      = validator.New(validator.WithRequiredStructEnabled())
)

// LoadConfig reads the file at path with the loader matching its extension.
func LoadConfig(path string) (Config, error) {
	loader, err := loaderFor(path)
	if err != nil {
		return Config{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	var cfg Config
	if err := loader.Load(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func loaderFor(path string) (ConfigLoader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, loader := range configLoaders {
		for _, e := range loader.Extensions() {
			if e == ext {
				return loader, nil
			}
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
}

// TextLoader reads two lines: the DataSource class, then the Calculator class.
// Lines are taken verbatim.
type TextLoader struct{}

func (TextLoader) Extensions() []string { return []string{".txt"} }

func (TextLoader) Load(r io.Reader, cfg *Config) error {
	scanner := bufio.NewScanner(r)
	lines := make([]string, 0, 2)
	for len(lines) < 2 && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	switch len(lines) {
	case 0:
		return errors.New("line 1: missing data source class")
	case 1:
		return errors.New("line 2: missing calculator class")
	}
	cfg.DataSource = lines[0]
	cfg.Calculator = lines[1]
	return nil
}

// YAMLLoader reads the datasource and calculator keys.
type YAMLLoader struct{}

func (YAMLLoader) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAMLLoader) Load(r io.Reader, cfg *Config) error {
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}
