package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/fantasy5/config"
	"github.com/domino14/fantasy5/filters"
	"github.com/domino14/fantasy5/matrix"
	"github.com/domino14/fantasy5/predictor"
	"github.com/domino14/fantasy5/ticket"
	"github.com/domino14/fantasy5/ticketgen"
)

func (sc *ShellController) strategy() ticketgen.Strategy {
	return ticketgen.ParseStrategy(sc.cfg.GetString(config.ConfigStrategy))
}

func (sc *ShellController) ticketCount() int {
	return sc.cfg.GetInt(config.ConfigTicketCount)
}

func (sc *ShellController) handleInfo() {
	if err := sc.loadPredictor(); err != nil {
		sc.showError(err)
		return
	}
	info := sc.predictor.Info()
	var sb strings.Builder
	fmt.Fprintf(&sb, "matrix:     %s\n", info.MatrixName)
	fmt.Fprintf(&sb, "positions:  %s\n", info.Positions)
	fmt.Fprintf(&sb, "lookback:   %d draw(s)\n", info.Lookback)
	fmt.Fprintf(&sb, "draws:      %d (%s to %s)\n", info.TotalDraws,
		info.FirstDraw.Format(dateLayout), info.LastDraw.Format(dateLayout))
	fmt.Fprintf(&sb, "strategy:   %s\n", sc.strategy())
	fmt.Fprintf(&sb, "tickets:    %d", sc.ticketCount())
	sc.showMessage(sb.String())
}

// predict [date]
func (sc *ShellController) handlePredict(args []string) {
	if err := sc.loadPredictor(); err != nil {
		sc.showError(err)
		return
	}
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	target, err := parseDateArg(arg)
	if err != nil {
		sc.showError(err)
		return
	}
	pred, err := sc.predictor.Predict(target, sc.ticketCount(), sc.strategy())
	if err != nil {
		sc.showError(err)
		return
	}
	sc.lastTickets = pred.Tickets

	var sb strings.Builder
	fmt.Fprintf(&sb, "predicting for %s (%s strategy)\n",
		pred.TargetDate.Format(dateLayout), pred.Strategy)
	for _, d := range pred.PreviousDraws {
		fmt.Fprintf(&sb, "previous draw %s: %v\n", d.Date.Format(dateLayout), d.Numbers)
	}
	if pred.FilterRejected > 0 {
		fmt.Fprintf(&sb, "composition filters rejected %d ticket(s)\n", pred.FilterRejected)
	}
	for i, st := range pred.Scored {
		fmt.Fprintf(&sb, "%2d) %-20v contact %5.2f  position %4.2f  combined %5.2f\n",
			i+1, st.Ticket, st.ContactScore, st.PositionScore, st.CombinedScore)
	}
	sc.showMessage(strings.TrimRight(sb.String(), "\n"))
}

// backtest <date>
func (sc *ShellController) handleBacktest(args []string) {
	if len(args) < 1 {
		sc.showError(errors.New("backtest needs a date, e.g. `backtest 2024-06-15`"))
		return
	}
	if err := sc.loadPredictor(); err != nil {
		sc.showError(err)
		return
	}
	date, err := parseDateArg(args[0])
	if err != nil {
		sc.showError(err)
		return
	}
	res, err := sc.predictor.BacktestSingle(date, sc.ticketCount(), sc.strategy())
	if err != nil {
		sc.showError(err)
		return
	}
	sc.lastTickets = res.Prediction.Tickets

	var sb strings.Builder
	if res.Actual == nil {
		fmt.Fprintf(&sb, "no draw recorded on %s; prediction only\n", args[0])
		for _, t := range res.Prediction.Tickets {
			fmt.Fprintf(&sb, "  %v\n", t)
		}
		sc.showMessage(strings.TrimRight(sb.String(), "\n"))
		return
	}
	fmt.Fprintf(&sb, "actual draw: %v\n", res.Actual)
	for _, m := range res.Matches {
		fmt.Fprintf(&sb, "  %-20v matches %d %v\n", m.Ticket, m.Matches, m.MatchingNumbers)
	}
	fmt.Fprintf(&sb, "best match: %d, tickets with 3+: %d\n", res.BestMatch, res.TicketsWith3Plus)
	fmt.Fprintf(&sb, "distribution:")
	for i, c := range res.MatchDistribution {
		fmt.Fprintf(&sb, " %d:%d", i, c)
	}
	sc.showMessage(sb.String())
}

// range <start> <end>
func (sc *ShellController) handleRange(args []string) {
	if len(args) < 2 {
		sc.showError(errors.New("range needs start and end dates, e.g. `range 2024-01-01 2024-03-31`"))
		return
	}
	if err := sc.loadPredictor(); err != nil {
		sc.showError(err)
		return
	}
	start, err := parseDateArg(args[0])
	if err != nil {
		sc.showError(err)
		return
	}
	end, err := parseDateArg(args[1])
	if err != nil {
		sc.showError(err)
		return
	}
	res, err := sc.predictor.BacktestRange(start, end, sc.ticketCount(), sc.strategy())
	if err != nil {
		sc.showError(err)
		return
	}
	sc.showMessage(formatRangeResult(res))
}

func formatRangeResult(res *predictor.RangeResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "days tested:       %d\n", res.DaysTested)
	fmt.Fprintf(&sb, "avg best match:    %.3f ± %.3f (stdev %.3f, min %.0f, max %.0f)\n",
		res.AvgBestMatch, res.ConfidenceBand, res.StdevBestMatch, res.MinBestMatch, res.MaxBestMatch)
	fmt.Fprintf(&sb, "chance baseline:   %.3f\n", res.ChanceBaseline)
	fmt.Fprintf(&sb, "days with 5:       %d\n", res.DaysWith5)
	fmt.Fprintf(&sb, "days with 4+:      %d\n", res.DaysWith4Plus)
	fmt.Fprintf(&sb, "days with 3+:      %d\n", res.DaysWith3Plus)
	fmt.Fprintf(&sb, "3+ tickets total:  %d", res.Total3PlusTickets)
	return sb.String()
}

func (sc *ShellController) handleBias() {
	if err := sc.loadPredictor(); err != nil {
		sc.showError(err)
		return
	}
	a := matrix.AnalyzeBias(sc.predictor.Matrix())
	var sb strings.Builder
	fmt.Fprintf(&sb, "matrix: %s\n", a.Name)
	fmt.Fprintf(&sb, "neighbors:  min %d, max %d, avg %.2f\n",
		a.MinNeighbors, a.MaxNeighbors, a.AvgNeighbors)
	fmt.Fprintf(&sb, "effective:  min %.2f, max %.2f, avg %.2f\n",
		a.MinEffective, a.MaxEffective, a.AvgEffective)
	if a.Uniform {
		fmt.Fprintf(&sb, "bias: uniform (no positional bias)")
	} else {
		fmt.Fprintf(&sb, "bias: NOT uniform (spread %.2f)", a.MaxEffective-a.MinEffective)
	}
	sc.showMessage(sb.String())
}

func (sc *ShellController) handleRanges() {
	if err := sc.loadPredictor(); err != nil {
		sc.showError(err)
		return
	}
	var sb strings.Builder
	for _, r := range sc.predictor.Positions().Ranges() {
		fmt.Fprintf(&sb, "%s: %2d-%2d  capture %.0f%%  pool reduction %.0f%%\n",
			r.Position, r.Min, r.Max, r.CaptureRate*100, r.PoolReduction*100)
	}
	sc.showMessage(strings.TrimRight(sb.String(), "\n"))
}

func (sc *ShellController) handleOverlap() {
	if err := sc.loadPredictor(); err != nil {
		sc.showError(err)
		return
	}
	overlap := sc.predictor.Positions().OverlapNumbers()
	sc.showMessage(fmt.Sprintf("numbers valid in every position: %v", overlap))
}

// filters validates the composition filter config against history; with a
// ticket argument (comma-separated numbers) it explains that one ticket.
func (sc *ShellController) handleFilters(args []string) {
	if err := sc.loadPredictor(); err != nil {
		sc.showError(err)
		return
	}
	fcfg := filters.DefaultConfig()
	if path := sc.cfg.GetString(config.ConfigFilterConfigPath); path != "" {
		var err error
		fcfg, err = filters.LoadConfigFile(path)
		if err != nil {
			sc.showError(err)
			return
		}
	}

	if len(args) > 0 {
		t, err := parseTicketArg(args[0])
		if err != nil {
			sc.showError(err)
			return
		}
		sc.explainTicket(t, fcfg)
		return
	}

	draws := sc.predictor.History().Draws()
	tickets := make([]ticket.Ticket, len(draws))
	for i, d := range draws {
		tickets[i] = d.Numbers
	}
	captures := filters.ValidateAgainstHistory(tickets, fcfg)

	var sb strings.Builder
	fmt.Fprintf(&sb, "capture rates over %d historical draws:\n", len(tickets))
	for _, gate := range filters.GateOrder {
		c := captures[gate]
		fmt.Fprintf(&sb, "  %-12s %5.1f%% (%d)\n", gate, c.Rate*100, c.Count)
	}
	all := captures[filters.AllGates]
	fmt.Fprintf(&sb, "  %-12s %5.1f%% (%d)", "all", all.Rate*100, all.Count)
	sc.showMessage(sb.String())
}

func (sc *ShellController) explainTicket(t ticket.Ticket, fcfg filters.Config) {
	last := ticket.Ticket{}
	if d, ok := sc.predictor.History().Last(); ok {
		last = d.Numbers
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "ticket %v\n", t)
	metrics := filters.AnalyzeTicket(t, last, ticket.DefaultPoolSize)
	for _, key := range []string{"sum", "odd_count", "high_count", "prime_count", "ac_value", "max_gap", "span"} {
		fmt.Fprintf(&sb, "  %-12s %g\n", key, metrics[key])
	}
	tf := filters.NewTicketFilter(fcfg)
	if tf.FilterSingle(t, last) {
		fmt.Fprintf(&sb, "passes all composition filters")
	} else {
		fmt.Fprintf(&sb, "rejected by the composition filters")
	}
	sc.showMessage(sb.String())
}

func parseTicketArg(arg string) (ticket.Ticket, error) {
	parts := strings.Split(arg, ",")
	t := make(ticket.Ticket, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad ticket number %q", p)
		}
		t = append(t, n)
	}
	return t, nil
}

// export <path>
func (sc *ShellController) handleExport(args []string) {
	if len(args) < 1 {
		sc.showError(errors.New("export needs a file path"))
		return
	}
	if len(sc.lastTickets) == 0 {
		sc.showError(errors.New("nothing to export; run `predict` first"))
		return
	}
	if err := predictor.ExportCSVFile(args[0], sc.lastTickets); err != nil {
		sc.showError(err)
		return
	}
	sc.showMessage(fmt.Sprintf("wrote %d tickets to %s", len(sc.lastTickets), args[0]))
}

// set <key> <value>
func (sc *ShellController) handleSet(args []string) {
	if len(args) < 2 {
		sc.showError(errors.New("set needs a key and a value, e.g. `set strategy contact_first`"))
		return
	}
	key := args[0]
	value := strings.Join(args[1:], " ")
	sc.cfg.Set(key, value)
	sc.reloadPredictor()
	sc.showMessage(fmt.Sprintf("%s = %s", key, value))
}
