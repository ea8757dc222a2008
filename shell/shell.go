// Package shell is the interactive front end: a readline loop that drives
// prediction, backtesting and analysis commands against one predictor
// instance built from the current config.
package shell

import (
	"errors"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/fantasy5/config"
	"github.com/domino14/fantasy5/predictor"
	"github.com/domino14/fantasy5/ticket"
)

const dateLayout = "2006-01-02"

type ShellController struct {
	l *readline.Instance

	cfg       *config.Config
	predictor *predictor.Predictor

	// lastTickets holds the most recent prediction for `export`.
	lastTickets []ticket.Ticket
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mfantasy5>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg}
}

// loadPredictor (re)builds the predictor from the current config. Commands
// that need one call this lazily so the shell can start before the data
// file exists.
func (sc *ShellController) loadPredictor() error {
	if sc.predictor != nil {
		return nil
	}
	p, err := predictor.NewFromConfig(sc.cfg)
	if err != nil {
		return err
	}
	sc.predictor = p
	return nil
}

// reloadPredictor drops the current predictor so the next command rebuilds
// it; used after `set`.
func (sc *ShellController) reloadPredictor() {
	sc.predictor = nil
}

func parseDateArg(arg string) (time.Time, error) {
	if arg == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, arg)
}

func (sc *ShellController) modeSwitch(line string, sig chan os.Signal) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "info":
		sc.handleInfo()
	case "predict":
		sc.handlePredict(args)
	case "backtest":
		sc.handleBacktest(args)
	case "range":
		sc.handleRange(args)
	case "bias":
		sc.handleBias()
	case "ranges":
		sc.handleRanges()
	case "overlap":
		sc.handleOverlap()
	case "filters":
		sc.handleFilters(args)
	case "export":
		sc.handleExport(args)
	case "set":
		sc.handleSet(args)
	case "help":
		sc.showMessage(usageText)
	case "bye", "exit", "quit":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	default:
		log.Debug().Msgf("you said: %v", line)
		sc.showMessage("unknown command; try `help`")
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := sc.modeSwitch(line, sig); err != nil {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
