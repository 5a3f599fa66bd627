package qname

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLocalNameLength is the maximum length of the local name created by the ValidLocalName.
const MaxLocalNameLength = 100

// DecodeISO9075 decodes the ISO 9075 '_xHHHH_' escapes of the provided xml name.
// Malformed escape sequences are left untouched.
func DecodeISO9075(name string) string {
	if !strings.Contains(name, "_x") {
		return name
	}

	var sb strings.Builder
	sb.Grow(len(name))
	for i := 0; i < len(name); {
		if isEscape(name, i) {
			r, _ := strconv.ParseUint(name[i+2:i+6], 16, 32)
			sb.WriteRune(rune(r))
			i += 7
			continue
		}
		sb.WriteByte(name[i])
		i++
	}
	return sb.String()
}

// EncodeISO9075 encodes the 'name' so that it is a valid xml local name.
// Each invalid character is replaced with the '_xHHHH_' sequence.
func EncodeISO9075(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))

	first := true
	for i, r := range name {
		switch {
		case r == '_' && isEscape(name, i):
			// a literal underscore that would be read as an escape
			fmt.Fprintf(&sb, "_x%04X_", r)
		case first && isNameStart(r), !first && isNameChar(r):
			sb.WriteRune(r)
		default:
			fmt.Fprintf(&sb, "_x%04X_", r)
		}
		first = false
	}
	return sb.String()
}

// ValidLocalName creates a valid local name from any text. The result is
// ISO 9075 encoded and truncated to the MaxLocalNameLength runes.
func ValidLocalName(name string) string {
	if utf8.RuneCountInString(name) > MaxLocalNameLength {
		name = string([]rune(name)[:MaxLocalNameLength])
	}
	return EncodeISO9075(name)
}

func isEscape(s string, i int) bool {
	if i+7 > len(s) || s[i] != '_' || s[i+1] != 'x' || s[i+6] != '_' {
		return false
	}
	for j := i + 2; j < i+6; j++ {
		if !isHex(s[j]) {
			return false
		}
	}
	return true
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || r == '-' || r == '.' || unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}
