package fixtures

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"rinha/interpreter-go/pkg/interpreter"
	"rinha/interpreter-go/pkg/runtime"
)

const (
	// ManifestFileName sits next to the program in every fixture directory.
	ManifestFileName = "manifest.yml"
	// DefaultEntry is the program evaluated when the manifest names none.
	DefaultEntry = "program.json"
)

// Manifest describes what a fixture program must do.
type Manifest struct {
	Description string `yaml:"description"`
	Entry       string `yaml:"entry"`
	Skip        bool   `yaml:"skip"`
	Expect      Expect `yaml:"expect"`
}

// Expect lists the observable outcome of a run. Stdout holds one entry per
// printed line; it is compared even when the run fails.
type Expect struct {
	Stdout []string        `yaml:"stdout"`
	Error  string          `yaml:"error"`
	Result *ExpectedResult `yaml:"result"`
}

// ExpectedResult pins the final value. Value is optional; for tuples and
// closures it is matched against the printed form.
type ExpectedResult struct {
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`
}

// LoadManifest reads dir/manifest.yml. A missing manifest yields an empty
// one so a bare program directory still runs.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Manifest{Entry: DefaultEntry}, nil
		}
		return nil, fmt.Errorf("manifest: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	if manifest.Entry == "" {
		manifest.Entry = DefaultEntry
	}
	if err := manifest.validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &manifest, nil
}

func (m *Manifest) validate() error {
	if m.Expect.Error != "" {
		if _, err := interpreter.ParseErrorKind(m.Expect.Error); err != nil {
			return err
		}
		if m.Expect.Result != nil {
			return fmt.Errorf("expect.error and expect.result are mutually exclusive")
		}
	}
	if m.Expect.Result != nil {
		if _, ok := runtime.ParseKind(m.Expect.Result.Kind); !ok {
			return fmt.Errorf("unknown result kind %q", m.Expect.Result.Kind)
		}
	}
	return nil
}
