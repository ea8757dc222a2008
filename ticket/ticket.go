// Package ticket contains the core value type for a candidate number-set,
// along with the game dimensions shared by the rest of the modules.
package ticket

import (
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultPoolSize is the size of the CA Fantasy 5 number pool (1-39).
	DefaultPoolSize = 39
	// DefaultPickSize is how many numbers are drawn per game.
	DefaultPickSize = 5
)

// A Ticket is one candidate selection of numbers from the pool. Tickets are
// canonically stored sorted ascending; use Sorted to canonicalize.
type Ticket []int

// Sorted returns a sorted copy of this ticket. The receiver is not modified.
func (t Ticket) Sorted() Ticket {
	s := make(Ticket, len(t))
	copy(s, t)
	sort.Ints(s)
	return s
}

// Key returns a canonical string identity for the ticket, used for
// deduplication. Two tickets with the same numbers in any order share a key.
func (t Ticket) Key() string {
	s := t.Sorted()
	var sb strings.Builder
	for i, n := range s {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}

// Contains reports whether n is one of the ticket's numbers.
func (t Ticket) Contains(n int) bool {
	for _, v := range t {
		if v == n {
			return true
		}
	}
	return false
}

// Matches returns the size of the set intersection with another ticket.
// Duplicate entries on either side count once.
func (t Ticket) Matches(other Ticket) int {
	seen := make(map[int]bool, len(t))
	for _, n := range t {
		seen[n] = true
	}
	matched := make(map[int]bool, len(other))
	for _, n := range other {
		if seen[n] {
			matched[n] = true
		}
	}
	return len(matched)
}

// Intersection returns the shared numbers with another ticket, sorted.
func (t Ticket) Intersection(other Ticket) Ticket {
	seen := make(map[int]bool, len(t))
	for _, n := range t {
		seen[n] = true
	}
	var out Ticket
	added := make(map[int]bool)
	for _, n := range other {
		if seen[n] && !added[n] {
			added[n] = true
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// IsValid reports whether the ticket has exactly pickSize distinct numbers,
// all within [1, poolSize].
func (t Ticket) IsValid(poolSize, pickSize int) bool {
	if len(t) != pickSize {
		return false
	}
	seen := make(map[int]bool, len(t))
	for _, n := range t {
		if n < 1 || n > poolSize {
			return false
		}
		if seen[n] {
			return false
		}
		seen[n] = true
	}
	return true
}

// Copy returns a copy of the ticket with the same ordering.
func (t Ticket) Copy() Ticket {
	c := make(Ticket, len(t))
	copy(c, t)
	return c
}

func (t Ticket) String() string {
	nums := make([]string, len(t))
	for i, n := range t {
		nums[i] = strconv.Itoa(n)
	}
	return strings.Join(nums, " ")
}
