package predictor

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/domino14/fantasy5/ticket"
)

// ExportCSV writes tickets as CSV with an N_1..N_k header row.
func ExportCSV(w io.Writer, tickets []ticket.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	header := make([]string, len(tickets[0]))
	for i := range header {
		header[i] = fmt.Sprintf("N_%d", i+1)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, t := range tickets {
		if len(t) != len(header) {
			return fmt.Errorf("ticket %v has %d numbers, want %d", t, len(t), len(header))
		}
		for i, n := range t {
			row[i] = strconv.Itoa(n)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportText writes tickets one per line, numbers space-separated.
func ExportText(w io.Writer, tickets []ticket.Ticket) error {
	for _, t := range tickets {
		parts := make([]string, len(t))
		for i, n := range t {
			parts[i] = strconv.Itoa(n)
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}

// ExportCSVFile writes tickets to a CSV file at path.
func ExportCSVFile(path string, tickets []ticket.Ticket) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportCSV(f, tickets); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParseTicketsCSV reads tickets back from the CSV format ExportCSV writes.
func ParseTicketsCSV(r io.Reader) ([]ticket.Ticket, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	var tickets []ticket.Ticket
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.HasPrefix(strings.ToUpper(strings.TrimSpace(row[0])), "N_") {
			continue
		}
		t := make(ticket.Ticket, 0, len(row))
		for _, field := range row {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			t = append(t, n)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
