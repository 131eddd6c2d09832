package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

var (
	ErrInvalidRun    = errors.New("levels: run step must be positive")
	ErrInvalidSize   = errors.New("levels: entity size must be positive")
	ErrNoPlayerStart = errors.New("levels: player_start is required")
)

const DefaultName = "default"

// Load reads a level by name. A file under ./levels on disk wins over the
// embedded copy so levels can be edited without rebuilding.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
		if err != nil {
			return nil, fmt.Errorf("read level %q: %w", name, err)
		}
	}
	return Parse(data)
}

// Default returns the embedded default level.
func Default() (*Level, error) {
	return Load(DefaultName)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Names lists the embedded levels and any yaml under ./levels, sorted and
// without the extension.
func Names() ([]string, error) {
	seen := map[string]bool{}
	embedded, err := fs.Glob(LevelsFS, "*.yaml")
	if err != nil {
		return nil, err
	}
	onDisk, err := filepath.Glob(filepath.Join("levels", "*.yaml"))
	if err != nil {
		return nil, err
	}
	for _, p := range append(embedded, onDisk...) {
		seen[strings.TrimSuffix(filepath.Base(p), ".yaml")] = true
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".yaml") {
		s += ".yaml"
	}
	return s
}
