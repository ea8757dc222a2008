package position

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRanges reads an external range table in YAML form: a list of entries
// with position, min, max and optional capture_rate/pool_reduction fields,
// one per rank in rank order.
func LoadRanges(r io.Reader) ([]Range, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var ranges []Range
	if err := yaml.Unmarshal(data, &ranges); err != nil {
		return nil, fmt.Errorf("parsing range table: %w", err)
	}
	for i, rg := range ranges {
		if rg.Min < 1 || rg.Max < rg.Min {
			return nil, fmt.Errorf("range %d (%s) has invalid bounds %d-%d",
				i+1, rg.Position, rg.Min, rg.Max)
		}
	}
	return ranges, nil
}

// LoadRangesFile is LoadRanges over a file path.
func LoadRangesFile(path string) ([]Range, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadRanges(f)
}
