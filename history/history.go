// Package history loads and indexes historical draw data. Draws come from a
// CSV export with a header row naming a date column plus one column per
// drawn number (N_1 through N_5 for a pick-5 game).
package history

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/fantasy5/ticket"
)

// Draw is a single historical draw.
type Draw struct {
	Date    time.Time
	Numbers ticket.Ticket
}

// History holds draws sorted oldest first.
type History struct {
	draws []Draw
}

var errBadHeader = errors.New("header must contain a date column and N_* number columns")

var dateFormats = []string{"1/2/2006", "2006-01-02", "1-2-2006"}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sameDay compares calendar dates, ignoring any time-of-day component.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseCSV reads draw history from r. The first row is a header; the date
// column is the one named "date" (case-insensitive) and number columns are
// every header starting with "N_", in header order. Rows that fail to parse
// are skipped.
func ParseCSV(r io.Reader) (*History, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	dateCol := -1
	var numCols []int
	for i, h := range header {
		h = strings.TrimSpace(h)
		switch {
		case strings.EqualFold(h, "date"):
			dateCol = i
		case strings.HasPrefix(strings.ToUpper(h), "N_"):
			numCols = append(numCols, i)
		}
	}
	if dateCol < 0 || len(numCols) == 0 {
		return nil, errBadHeader
	}

	h := &History{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Debug().Err(err).Int("line", line).Msg("skipping unreadable row")
			continue
		}
		draw, ok := parseRow(row, dateCol, numCols)
		if !ok {
			log.Debug().Int("line", line).Msg("skipping malformed row")
			continue
		}
		h.draws = append(h.draws, draw)
	}
	h.sortByDate()
	return h, nil
}

func parseRow(row []string, dateCol int, numCols []int) (Draw, bool) {
	if dateCol >= len(row) {
		return Draw{}, false
	}
	date, ok := parseDate(row[dateCol])
	if !ok {
		return Draw{}, false
	}
	nums := make(ticket.Ticket, 0, len(numCols))
	for _, c := range numCols {
		if c >= len(row) {
			return Draw{}, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(row[c]))
		if err != nil {
			return Draw{}, false
		}
		nums = append(nums, n)
	}
	return Draw{Date: truncateDay(date), Numbers: nums}, true
}

// LoadCSVFile loads draw history from a CSV file on disk.
func LoadCSVFile(path string) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h, err := ParseCSV(f)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("draws", h.Len()).Msg("loaded draw history")
	return h, nil
}

// FromDraws builds a History from already-parsed draws, sorting them by date.
func FromDraws(draws []Draw) *History {
	h := &History{draws: append([]Draw(nil), draws...)}
	h.sortByDate()
	return h
}

func (h *History) sortByDate() {
	sort.SliceStable(h.draws, func(i, j int) bool {
		return h.draws[i].Date.Before(h.draws[j].Date)
	})
}

func (h *History) Len() int {
	return len(h.draws)
}

// Draws returns all draws, oldest first. Callers must not mutate the slice.
func (h *History) Draws() []Draw {
	return h.draws
}

// DrawOn returns the draw on the given calendar date, if any.
func (h *History) DrawOn(date time.Time) (Draw, bool) {
	for _, d := range h.draws {
		if sameDay(d.Date, date) {
			return d, true
		}
	}
	return Draw{}, false
}

// DrawsBefore returns up to count draws strictly before date, most recent
// first.
func (h *History) DrawsBefore(date time.Time, count int) []Draw {
	cutoff := truncateDay(date)
	var out []Draw
	for i := len(h.draws) - 1; i >= 0 && len(out) < count; i-- {
		if h.draws[i].Date.Before(cutoff) {
			out = append(out, h.draws[i])
		}
	}
	return out
}

// RecentNumbers returns the flattened numbers of the numDraws draws before
// date, most recent draw's numbers first. Duplicates across draws are kept;
// contact scoring counts numbers once regardless.
func (h *History) RecentNumbers(date time.Time, numDraws int) []int {
	var nums []int
	for _, d := range h.DrawsBefore(date, numDraws) {
		nums = append(nums, d.Numbers...)
	}
	return nums
}

// Last returns the most recent draw in the dataset.
func (h *History) Last() (Draw, bool) {
	if len(h.draws) == 0 {
		return Draw{}, false
	}
	return h.draws[len(h.draws)-1], true
}

// DateRange returns the first and last draw dates.
func (h *History) DateRange() (time.Time, time.Time, bool) {
	if len(h.draws) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return h.draws[0].Date, h.draws[len(h.draws)-1].Date, true
}

// From returns the index of the first draw on or after start, or -1 if no
// draw qualifies. Backtests walk Draws() from this index; everything before
// it is lookback material.
func (h *History) From(start time.Time) int {
	cutoff := truncateDay(start)
	for i, d := range h.draws {
		if !d.Date.Before(cutoff) {
			return i
		}
	}
	return -1
}
