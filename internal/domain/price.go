package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// priceScale converts the operator shorthand into the stored unit: fractional
// and 2-digit entries are quoted in thousands.
const priceScale = 1000

// NormalizePrice parses free-form price input into a canonical integer value.
//
// The shorthand rules, in order:
//  1. commas are treated as decimal points ("4,5" == "4.5")
//  2. input with a decimal point is read as a real number of thousands
//     ("4.5" -> 4500), truncated toward zero
//  3. input of exactly two characters is read as whole thousands
//     ("45" -> 45000)
//  4. anything else is taken literally ("450" -> 450)
//
// The decimal check runs before the length check, so a 2-character input like
// ".5" falls under rule 2. Surrounding whitespace is ignored by the numeric
// parse but still counts toward rule 3's length, so " 4" reads as 4000. The
// sign is passed through untouched; rejecting negative prices is a
// session-level validation rule, not a parser concern.
func NormalizePrice(input string) (int64, error) {
	normalized := strings.ReplaceAll(input, ",", ".")
	trimmed := strings.TrimSpace(normalized)

	if strings.Contains(normalized, ".") {
		value, err := decimal.NewFromString(trimmed)
		if err != nil {
			return 0, &ParseError{Field: FieldPrice, Input: input, Err: err}
		}
		return value.Mul(decimal.NewFromInt(priceScale)).IntPart(), nil
	}

	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, &ParseError{Field: FieldPrice, Input: input, Err: err}
	}

	if len(normalized) == 2 {
		return value * priceScale, nil
	}

	return value, nil
}
