package matrix

import "fmt"

// Matrix variant names accepted by New.
const (
	VariantGrid      = "grid"      // grid adjacency with bias correction
	VariantGridRaw   = "grid-raw"  // grid adjacency, uncorrected baseline
	VariantProximity = "proximity" // numeric proximity
	VariantCSV       = "csv"       // grid layout loaded from a CSV file
)

// Options carries the variant-specific construction parameters.
type Options struct {
	// Rows overrides the grid row count (grid variants).
	Rows int
	// WindowSize is the numeric-proximity window; 0 means the default.
	WindowSize int
	// Wraparound makes the proximity pool toroidal.
	Wraparound bool
	// CSVPath locates the layout file for the csv variant.
	CSVPath string
}

// New constructs a ContactMatrix by variant name.
func New(variant string, poolSize int, opts Options) (ContactMatrix, error) {
	switch variant {
	case VariantGrid:
		if opts.Rows > 0 {
			return NewGridMatrixWithShape(poolSize, opts.Rows, true), nil
		}
		return NewGridMatrix(poolSize, true), nil
	case VariantGridRaw:
		if opts.Rows > 0 {
			return NewGridMatrixWithShape(poolSize, opts.Rows, false), nil
		}
		return NewGridMatrix(poolSize, false), nil
	case VariantProximity:
		return NewProximityMatrix(poolSize, opts.WindowSize, opts.Wraparound), nil
	case VariantCSV:
		if opts.CSVPath == "" {
			return nil, fmt.Errorf("csv matrix variant needs a layout path")
		}
		return NewCSVGridMatrix(opts.CSVPath, true)
	}
	return nil, fmt.Errorf("unknown matrix variant %q", variant)
}
