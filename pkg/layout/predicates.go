/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package layout

import (
	"strings"
	"unicode"
)

// IsLowerCase reports whether s contains no upper-case letters.
// Digits and punctuation are permitted.
func IsLowerCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// IsPascalCaseAlnum reports whether s starts with an upper-case ASCII letter
// followed only by ASCII letters and digits (e.g. "Contoso", "Widget2").
func IsPascalCaseAlnum(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if r < 'A' || r > 'Z' {
				return false
			}
			continue
		}
		if !isASCIILetter(r) && !isASCIIDigit(r) {
			return false
		}
	}
	return true
}

// IsDotJoinedPascalPair reports whether s is two PascalCase alphanumeric
// identifiers joined by a single period (e.g. "Microsoft.Contoso").
func IsDotJoinedPascalPair(s string) bool {
	first, second, found := strings.Cut(s, ".")
	if !found {
		return false
	}
	return IsPascalCaseAlnum(first) && IsPascalCaseAlnum(second)
}

// IsCapitalizedAfterPeriods reports whether no period-delimited component of
// s begins with a lower-case letter. The start of the string counts as a
// component boundary.
func IsCapitalizedAfterPeriods(s string) bool {
	atBoundary := true
	for _, r := range s {
		if atBoundary && unicode.IsLower(r) {
			return false
		}
		atBoundary = r == '.'
	}
	return true
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
