package serializer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
)

// foldMarks strips diacritics so "Zoë" becomes "Zoe". Letters without a
// decomposition, such as Cyrillic or CJK, pass through unchanged.
func foldMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNameRune(r rune) bool {
	return isWordRune(r) || r == '_'
}

// slug lower-cases s and collapses every run of characters that are not
// letters, digits or underscores into a single dash, trimming dashes at both
// ends.
func slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range s {
		if isNameRune(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		dash = true
	}
	return b.String()
}

// SafeFileName turns a human-readable key such as an email address into a
// name that is safe on every file system. The last extension survives, so
// "john.doe@example.com" becomes "john-doe-example.com". The result never
// contains path separators and is never empty.
func SafeFileName(key string) string {
	folded := foldMarks(strings.TrimSpace(key))

	name, ext := folded, ""
	if i := strings.LastIndex(folded, "."); i > 0 {
		name, ext = folded[:i], folded[i+1:]
	}

	name, ext = slug(name), slug(ext)
	if name == "" {
		name = constants.UntitledFileName
	}
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// DocumentFileName returns the file name of the document stored under key.
func DocumentFileName(key string) string {
	name := SafeFileName(key)
	if strings.HasSuffix(name, constants.DocumentExtension) {
		return name
	}
	return name + constants.DocumentExtension
}

// SafeAlias derives a camelCase machine identifier from a display name:
// "Premium Members" becomes "premiumMembers" and "Золото клуб" becomes
// "золотоКлуб". Leading digits are dropped so the alias always starts with a
// letter; a name without letters yields "".
func SafeAlias(name string) string {
	folded := strings.TrimLeftFunc(foldMarks(name), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !isWordRune(r)
	})

	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		first, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(first))
		b.WriteString(w[size:])
	}
	return b.String()
}
