package ledger

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/radicex/errors"
)

// Amount is a fixed-point quantity of fungible value, counted in hundredths
// of a unit. All economy constants (1, 0.9, 5) are exact in this
// representation; value paths never touch floating point.
type Amount int64

// Unit is one whole unit of fungible value.
const Unit Amount = 100

// ParseAmount parses a decimal string such as "1", "0.9", or "1.50" into an
// Amount. At most two fractional digits are accepted; negative amounts are
// rejected.
func ParseAmount(s string) (Amount, error) {
	trimmed := strings.TrimSpace(s)
	invalid := func() error {
		return apperrors.WithMetadata(apperrors.CodeInvalidAmount,
			fmt.Sprintf("invalid amount %q", s),
			map[string]string{"Value": s})
	}
	if trimmed == "" || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "+") {
		return 0, invalid()
	}

	whole := trimmed
	frac := ""
	if i := strings.IndexByte(trimmed, '.'); i >= 0 {
		whole, frac = trimmed[:i], trimmed[i+1:]
		if whole == "" || frac == "" || len(frac) > 2 {
			return 0, invalid()
		}
	}

	units, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, invalid()
	}

	hundredths := uint64(0)
	if frac != "" {
		hundredths, err = strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, invalid()
		}
		if len(frac) == 1 {
			hundredths *= 10
		}
	}

	if units > uint64((1<<62)/int64(Unit)) {
		return 0, invalid()
	}
	return Amount(units)*Unit + Amount(hundredths), nil
}

// String renders the amount as a decimal with trailing zeros trimmed:
// 100 -> "1", 90 -> "0.9", 125 -> "1.25".
func (a Amount) String() string {
	neg := a < 0
	if neg {
		a = -a
	}
	units := int64(a) / int64(Unit)
	hundredths := int64(a) % int64(Unit)

	var s string
	switch {
	case hundredths == 0:
		s = strconv.FormatInt(units, 10)
	case hundredths%10 == 0:
		s = fmt.Sprintf("%d.%d", units, hundredths/10)
	default:
		s = fmt.Sprintf("%d.%02d", units, hundredths)
	}
	if neg {
		return "-" + s
	}
	return s
}
