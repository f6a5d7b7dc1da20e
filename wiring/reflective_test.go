package wiring_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assurrussa/dilab/extension"
	"github.com/assurrussa/dilab/metier"
	"github.com/assurrussa/dilab/registry"
	"github.com/assurrussa/dilab/wiring"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunReflective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{
			name:    "web service",
			file:    "config.txt",
			content: "extension.WebService\nmetier.Impl\n",
			want:    "Result: 276.0\n",
		},
		{
			name:    "database without trailing newline",
			file:    "config.txt",
			content: "dao.Database\nmetier.Impl",
			want:    "Result: 529.0\n",
		},
		{
			name:    "yaml",
			file:    "config.yaml",
			content: "datasource: extension.WebService\ncalculator: metier.Impl\n",
			want:    "Result: 276.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			wiring.RunReflective(&out, wiring.Classes(), writeFile(t, tt.file, tt.content))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunReflectiveShippedConfig(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	wiring.RunReflective(&out, wiring.Classes(), filepath.Join("..", "examples", "reflective", "config.txt"))
	assert.Equal(t, "Result: 276.0\n", out.String())
}

func TestRunReflectivePrintsFailureInsteadOfResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		message string
	}{
		{
			name: "unknown data source",
			path: func(t *testing.T) string {
				return writeFile(t, "config.txt", "dao.Oracle\nmetier.Impl\n")
			},
			message: `registry: class "dao.Oracle" not found`,
		},
		{
			name: "unknown calculator",
			path: func(t *testing.T) string {
				return writeFile(t, "config.txt", "dao.Database\nmetier.Fast\n")
			},
			message: `registry: class "metier.Fast" not found`,
		},
		{
			name: "no single-dependency constructor",
			path: func(t *testing.T) string {
				return writeFile(t, "config.txt", "dao.Database\nextension.WebService\n")
			},
			message: "has no constructor (*dao.Database)",
		},
		{
			name: "missing second line",
			path: func(t *testing.T) string {
				return writeFile(t, "config.txt", "dao.Database\n")
			},
			message: "line 2: missing calculator class",
		},
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "config.txt")
			},
			message: "no such file or directory",
		},
		{
			name: "unsupported format",
			path: func(t *testing.T) string {
				return writeFile(t, "config.ini", "x")
			},
			message: `config: unsupported format ".ini"`,
		},
		{
			name: "yaml missing key",
			path: func(t *testing.T) string {
				return writeFile(t, "config.yml", "datasource: dao.Database\n")
			},
			message: "Calculator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			wiring.RunReflective(&out, wiring.Classes(), tt.path(t))

			assert.NotContains(t, out.String(), "Result:")
			assert.Contains(t, out.String(), tt.message)
		})
	}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	calc, err := wiring.Assemble(wiring.Classes(), wiring.Config{
		DataSource: wiring.ClassWebService,
		Calculator: wiring.ClassCalculator,
	})
	require.NoError(t, err)

	impl, ok := calc.(*metier.Impl)
	require.True(t, ok)
	assert.IsType(t, &extension.WebService{}, impl.DataSource())

	got, err := calc.Compute()
	require.NoError(t, err)
	assert.InDelta(t, 276.0, got, 0)
}

func TestAssembleRejectsClassesOfTheWrongRole(t *testing.T) {
	t.Parallel()

	_, err := wiring.Assemble(wiring.Classes(), wiring.Config{
		DataSource: wiring.ClassCalculator,
		Calculator: wiring.ClassCalculator,
	})
	require.ErrorContains(t, err, "does not implement dao.DataSource")

	_, err = wiring.Assemble(wiring.Classes(), wiring.Config{
		DataSource: wiring.ClassDatabase,
		Calculator: wiring.ClassWebService,
	})
	var ctorErr *registry.ConstructorNotFoundError
	require.ErrorAs(t, err, &ctorErr)
	assert.Equal(t, wiring.ClassWebService, ctorErr.Class)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := wiring.LoadConfig(filepath.Join("..", "examples", "reflective", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, wiring.Config{DataSource: wiring.ClassDatabase, Calculator: wiring.ClassCalculator}, cfg)

	// Lines are not trimmed.
	cfg, err = wiring.LoadConfig(writeFile(t, "config.txt", "dao.Database \nmetier.Impl\n"))
	require.NoError(t, err)
	assert.Equal(t, "dao.Database ", cfg.DataSource)

	_, err = wiring.LoadConfig(writeFile(t, "config.txt", ""))
	require.ErrorContains(t, err, "line 1")

	_, err = wiring.LoadConfig(writeFile(t, "config.json", "{}"))
	require.ErrorIs(t, err, wiring.ErrUnsupportedFormat)
}
