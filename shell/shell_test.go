package shell

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/fantasy5/predictor"
	"github.com/domino14/fantasy5/ticket"
)

func TestParseDateArg(t *testing.T) {
	is := is.New(t)
	d, err := parseDateArg("2024-06-15")
	is.NoErr(err)
	is.Equal(d.Year(), 2024)
	is.Equal(int(d.Month()), 6)

	d, err = parseDateArg("")
	is.NoErr(err)
	is.True(d.IsZero())

	_, err = parseDateArg("06/15/2024")
	is.True(err != nil)
}

func TestParseTicketArg(t *testing.T) {
	is := is.New(t)
	tk, err := parseTicketArg("5,12, 19,27,33")
	is.NoErr(err)
	is.Equal(tk, ticket.Ticket{5, 12, 19, 27, 33})

	_, err = parseTicketArg("5,abc")
	is.True(err != nil)
}

func TestFormatRangeResult(t *testing.T) {
	is := is.New(t)
	out := formatRangeResult(&predictor.RangeResult{
		DaysTested:     10,
		AvgBestMatch:   2.1,
		ChanceBaseline: 1.9,
		DaysWith3Plus:  4,
	})
	is.True(strings.Contains(out, "days tested:       10"))
	is.True(strings.Contains(out, "2.100"))
	is.True(strings.Contains(out, "1.900"))
}
