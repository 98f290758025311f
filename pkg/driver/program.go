package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rinha/interpreter-go/pkg/ast"
)

// LoadProgram reads and decodes a JSON AST file. A file without a name
// takes the base name of its path.
func LoadProgram(path string) (*ast.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load program: %w", err)
	}
	file, err := ast.DecodeFile(data)
	if err != nil {
		return nil, fmt.Errorf("load program %s: %w", path, err)
	}
	if file.Name == "" {
		file.Name = filepath.Base(path)
	}
	return file, nil
}

// DiscoverPrograms lists the *.json files under dir, sorted, skipping
// hidden directories (including .git of fetched corpora).
func DiscoverPrograms(dir string) ([]string, error) {
	var programs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".json") {
			programs = append(programs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover programs in %s: %w", dir, err)
	}
	sort.Strings(programs)
	return programs, nil
}
