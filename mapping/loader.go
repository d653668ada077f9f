package mapping

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var embeddedTables embed.FS

// loadTable decodes one embedded table file into T.
func loadTable[T any](name string) (T, error) {
	var t T
	data, err := embeddedTables.ReadFile("tables/" + name)
	if err != nil {
		return t, fmt.Errorf("reading table %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parsing table %s: %w", name, err)
	}
	return t, nil
}

// mustLoad panics on a broken embedded table.
func mustLoad[T any](name string) T {
	t, err := loadTable[T](name)
	if err != nil {
		panic(err)
	}
	return t
}
