package predictor

import (
	"fmt"

	"github.com/domino14/fantasy5/config"
	"github.com/domino14/fantasy5/filters"
	"github.com/domino14/fantasy5/history"
	"github.com/domino14/fantasy5/matrix"
	"github.com/domino14/fantasy5/position"
	"github.com/domino14/fantasy5/ticket"
)

// NewFromConfig assembles a Predictor from resolved settings: it loads the
// draw history, builds the configured matrix and position filter, and wires
// the composition filters when enabled.
func NewFromConfig(cfg *config.Config) (*Predictor, error) {
	h, err := history.LoadCSVFile(cfg.GetString(config.ConfigDataPath))
	if err != nil {
		return nil, fmt.Errorf("loading draw history: %w", err)
	}

	m, err := matrix.New(cfg.GetString(config.ConfigMatrix), ticket.DefaultPoolSize, matrix.Options{
		Rows:       cfg.GetInt(config.ConfigGridRows),
		WindowSize: cfg.GetInt(config.ConfigWindowSize),
		Wraparound: cfg.GetBool(config.ConfigWraparound),
		CSVPath:    cfg.GetString(config.ConfigMatrixCSVPath),
	})
	if err != nil {
		return nil, fmt.Errorf("building contact matrix: %w", err)
	}

	var pf *position.Filter
	if rangesPath := cfg.GetString(config.ConfigRangesPath); rangesPath != "" {
		ranges, err := position.LoadRangesFile(rangesPath)
		if err != nil {
			return nil, fmt.Errorf("loading position ranges: %w", err)
		}
		pf, err = position.NewFilterWithRanges(ranges, ticket.DefaultPoolSize)
		if err != nil {
			return nil, err
		}
	} else {
		pf = position.NewFilter(position.CaptureLevel(cfg.GetString(config.ConfigCaptureLevel)))
	}

	var tf *filters.TicketFilter
	if cfg.GetBool(config.ConfigApplyFilters) {
		fcfg := filters.DefaultConfig()
		if path := cfg.GetString(config.ConfigFilterConfigPath); path != "" {
			fcfg, err = filters.LoadConfigFile(path)
			if err != nil {
				return nil, fmt.Errorf("loading filter config: %w", err)
			}
		}
		tf = filters.NewTicketFilter(fcfg)
	}

	p, err := New(h, Options{
		Matrix:    m,
		Positions: pf,
		Lookback:  cfg.GetInt(config.ConfigLookback),
		Filter:    tf,
	})
	if err != nil {
		return nil, err
	}
	if seed := cfg.GetInt64(config.ConfigSeed); seed != 0 {
		p.Seed(seed)
	}
	return p, nil
}
