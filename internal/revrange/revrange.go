package revrange

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const separator = ".."

// ErrInvalid is wrapped by every error returned from Parse.
var ErrInvalid = errors.New("invalid revision range")

// Range is an inclusive interval of review request IDs.
type Range struct {
	Start int
	End   int
}

// Parse parses "N" into (N, N) and "N..M" into (N, M).
func Parse(s string) (Range, error) {
	parts := strings.Split(s, separator)
	switch len(parts) {
	case 1:
		n, err := parseID(parts[0])
		if err != nil {
			return Range{}, err
		}
		return Range{Start: n, End: n}, nil
	case 2:
		start, err := parseID(parts[0])
		if err != nil {
			return Range{}, err
		}
		end, err := parseID(parts[1])
		if err != nil {
			return Range{}, err
		}
		return Range{Start: start, End: end}, nil
	default:
		return Range{}, fmt.Errorf("%w: %q has more than one %q", ErrInvalid, s, separator)
	}
}

func parseID(tok string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(tok))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalid, tok)
	}
	return n, nil
}

// Len returns the number of revisions in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	n := uint(r.End) - uint(r.Start) + 1
	if n == 0 || n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

// String formats the range the way Parse accepts it.
func (r Range) String() string {
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return fmt.Sprintf("%d%s%d", r.Start, separator, r.End)
}
