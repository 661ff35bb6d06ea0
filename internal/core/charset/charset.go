// Package charset defines the character sets and naming spaces that random
// names are drawn from.
package charset

import (
	"fmt"
	"math"
	"strings"
)

// Casing selects upper, lower, or mixed case for sets that support it.
type Casing string

const (
	CasingDefault Casing = ""
	CasingLower   Casing = "lower"
	CasingUpper   Casing = "upper"
	CasingMixed   Casing = "mixed"
)

// Built-in set selections.
const (
	SelLetters      = "letters"
	SelNumbers      = "numbers"
	SelAlphaNumeric = "alpha_numeric"
	SelBase16       = "base16"
	SelBase64       = "base64"
	SelCustom       = "custom"
)

// Selections lists the recognized --char-set values.
var Selections = []string{SelLetters, SelNumbers, SelAlphaNumeric, SelBase16, SelBase64, SelCustom}

const (
	lower   = "abcdefghijklmnopqrstuvwxyz"
	upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
	base64u = upper + lower + digits + "-_"
)

// ConfigError reports an invalid character set or naming space configuration.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// Set is a resolved character set: the exact symbols names are drawn from.
type Set struct {
	label string
	runes []rune
}

// Runes returns the symbols in the set.
func (s Set) Runes() []rune { return s.runes }

// Len returns the number of symbols in the set.
func (s Set) Len() int { return len(s.runes) }

func (s Set) String() string { return s.label }

// Resolve maps a set selection, optional custom characters, and optional
// casing to a concrete Set. Casing defaults to lower where applicable.
func Resolve(selection, custom string, casing Casing) (Set, error) {
	if selection != SelCustom && custom != "" {
		return Set{}, configErrorf("--custom-chars requires --char-set=custom")
	}

	switch selection {
	case SelCustom:
		if casing != CasingDefault {
			return Set{}, configErrorf("--case is not applicable to custom character sets")
		}
		return parseCustom(custom)
	case SelLetters:
		return cased(casing, "[a-z]", lower, "[A-Z]", upper, "[a-zA-Z]", lower+upper)
	case SelNumbers:
		if casing != CasingDefault {
			return Set{}, configErrorf("--case is not applicable to the numbers character set")
		}
		return Set{label: "[0-9]", runes: []rune(digits)}, nil
	case SelAlphaNumeric:
		return cased(casing, "[a-z0-9]", lower+digits, "[A-Z0-9]", upper+digits, "[a-zA-Z0-9]", lower+upper+digits)
	case SelBase16:
		if casing == CasingMixed {
			return Set{}, configErrorf("base16 supports only upper or lower case")
		}
		return cased(casing, "[0-9a-f]", digits+"abcdef", "[0-9A-F]", digits+"ABCDEF", "", "")
	case SelBase64:
		if casing != CasingDefault {
			return Set{}, configErrorf("--case is not applicable to the base64 character set")
		}
		return Set{label: "[A-Za-z0-9-_]", runes: []rune(base64u)}, nil
	default:
		return Set{}, configErrorf("unknown character set %q", selection)
	}
}

func cased(casing Casing, lowLabel, low, upLabel, up, mixLabel, mix string) (Set, error) {
	switch casing {
	case CasingDefault, CasingLower:
		return Set{label: lowLabel, runes: []rune(low)}, nil
	case CasingUpper:
		return Set{label: upLabel, runes: []rune(up)}, nil
	case CasingMixed:
		return Set{label: mixLabel, runes: []rune(mix)}, nil
	default:
		return Set{}, configErrorf("unknown case %q", casing)
	}
}

// parseCustom validates a user-provided character set. Symbols must be unique
// and filename-safe.
func parseCustom(chars string) (Set, error) {
	if chars == "" {
		return Set{}, configErrorf("custom character set is empty")
	}

	var illegal, duplicate []rune
	seen := make(map[rune]bool)
	for _, r := range chars {
		if !FilenameSafe(r) {
			illegal = append(illegal, r)
			continue
		}
		if seen[r] {
			duplicate = append(duplicate, r)
			continue
		}
		seen[r] = true
	}

	if len(illegal) > 0 {
		return Set{}, configErrorf("custom character set contains illegal characters: %s", quoteRunes(illegal))
	}
	if len(duplicate) > 0 {
		return Set{}, configErrorf("custom character set contains duplicate characters: %s", quoteRunes(duplicate))
	}

	return Set{label: fmt.Sprintf("Custom(%q)", chars), runes: []rune(chars)}, nil
}

// FilenameSafe reports whether a rune may appear in a generated filename on
// common filesystems.
func FilenameSafe(r rune) bool {
	if r < 0x20 || r == 0x7f {
		return false
	}
	return !strings.ContainsRune(`/\?<>:*|"`, r)
}

func quoteRunes(runes []rune) string {
	quoted := make([]string, len(runes))
	for i, r := range runes {
		quoted[i] = fmt.Sprintf("%q", r)
	}
	return strings.Join(quoted, ", ")
}

// Space is a naming space: a character set plus a fixed name length. The
// total number of distinct names is Len^Length.
type Space struct {
	set    Set
	length int
}

// NewSpace builds a naming space from a set and a name length.
func NewSpace(set Set, length int) (Space, error) {
	if set.Len() == 0 {
		return Space{}, configErrorf("character set is empty")
	}
	if length <= 0 {
		return Space{}, configErrorf("name length must be positive, got %d", length)
	}
	return Space{set: set, length: length}, nil
}

// Set returns the character set of the space.
func (sp Space) Set() Set { return sp.set }

// Length returns the fixed name length.
func (sp Space) Length() int { return sp.length }

// Size returns the total number of distinct names in the space. The second
// return is false when the count overflows uint64; callers should treat the
// space as effectively infinite in that case.
func (sp Space) Size() (uint64, bool) {
	n := uint64(sp.set.Len())
	q := uint64(1)
	for i := 0; i < sp.length; i++ {
		if q > math.MaxUint64/n {
			return 0, false
		}
		q *= n
	}
	return q, true
}
