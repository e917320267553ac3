package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseQuantity parses free-form quantity input as a literal base-10 integer.
// All whitespace is stripped first, so " 1 2 " reads as 12. Unlike prices
// there is no magnitude shorthand.
func ParseQuantity(input string) (int64, error) {
	var b strings.Builder
	for _, r := range input {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}

	value, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, &ParseError{Field: FieldQuantity, Input: input, Err: err}
	}

	return value, nil
}
