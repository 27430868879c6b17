package masking

import (
	"strings"
	"unicode"
	"unicode/utf8"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
)

// partialMask renders value through the template. Every style masks the whole
// value when it is too short to keep anything visible.
func partialMask(value string, t piiDomain.MaskTemplate, maskChar rune) string {
	switch t.Style {
	case piiDomain.StyleEmail:
		return maskEmail(value, t, maskChar)
	case piiDomain.StyleDigits:
		return maskDigits(value, t, maskChar)
	default:
		return maskEdges(value, t.VisiblePrefix, t.VisibleSuffix, maskChar)
	}
}

// maskEmail: john.doe@example.com -> j***@e***.com
func maskEmail(value string, t piiDomain.MaskTemplate, maskChar rune) string {
	at := strings.LastIndex(value, "@")
	if at < 1 || at == len(value)-1 {
		return maskEdges(value, t.VisiblePrefix, t.VisibleSuffix, maskChar)
	}
	local, domain := value[:at], value[at+1:]

	filler := strings.Repeat(string(maskChar), 3)

	var b strings.Builder
	b.WriteString(firstRunes(local, t.VisiblePrefix))
	b.WriteString(filler)
	b.WriteByte('@')

	dot := strings.LastIndex(domain, ".")
	if dot < 1 {
		b.WriteString(firstRunes(domain, t.VisiblePrefix))
		b.WriteString(filler)
		return b.String()
	}
	b.WriteString(firstRunes(domain[:dot], t.VisiblePrefix))
	b.WriteString(filler)
	b.WriteString(domain[dot:])
	return b.String()
}

// maskDigits: 555-123-4567 -> ***-***-4567. Separators are kept.
func maskDigits(value string, t piiDomain.MaskTemplate, maskChar rune) string {
	total := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			total++
		}
	}
	if total == 0 {
		return maskEdges(value, t.VisiblePrefix, t.VisibleSuffix, maskChar)
	}

	maskAll := total <= t.VisiblePrefix+t.VisibleSuffix
	var b strings.Builder
	b.Grow(len(value))
	seen := 0
	for _, r := range value {
		if !unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		visible := !maskAll && (seen < t.VisiblePrefix || seen >= total-t.VisibleSuffix)
		if visible {
			b.WriteRune(r)
		} else {
			b.WriteRune(maskChar)
		}
		seen++
	}
	return b.String()
}

// maskEdges keeps prefix and suffix runes: AB1234567 -> AB*****67
func maskEdges(value string, prefix, suffix int, maskChar rune) string {
	runes := []rune(value)
	n := len(runes)
	if n <= prefix+suffix {
		return strings.Repeat(string(maskChar), n)
	}

	var b strings.Builder
	b.WriteString(string(runes[:prefix]))
	b.WriteString(strings.Repeat(string(maskChar), n-prefix-suffix))
	b.WriteString(string(runes[n-suffix:]))
	return b.String()
}

// fullMask returns length mask runes, or one per rune of value when length is zero.
func fullMask(value string, length int, maskChar rune) string {
	if length <= 0 {
		length = utf8.RuneCountInString(value)
	}
	return strings.Repeat(string(maskChar), length)
}

func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
