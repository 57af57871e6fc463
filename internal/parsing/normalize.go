package parsing

import (
	"regexp"
	"strings"
)

var commaDecimalRe = regexp.MustCompile(`(\d),(\d{2})`)

// NormalizeLine corrects common OCR misreads within a single line and
// standardizes the decimal separator to a dot. It is pure, idempotent and
// never fails; malformed input comes back best-effort normalized.
func NormalizeLine(line string) string {
	line = strings.ReplaceAll(line, "€", "")
	line = fixDigitConfusions(line)
	line = commaDecimalRe.ReplaceAllString(line, "$1.$2")
	return strings.TrimSpace(line)
}

// fixDigitConfusions rewrites O/o to 0 and l/I to 1, but only when the letter
// sits directly between digit-or-comma characters. Letters inside normal
// words are left alone so text is not corrupted.
func fixDigitConfusions(line string) string {
	runes := []rune(line)
	for i := 1; i < len(runes)-1; i++ {
		var repl rune
		switch runes[i] {
		case 'O', 'o':
			repl = '0'
		case 'l', 'I':
			repl = '1'
		default:
			continue
		}
		if numericContext(runes[i-1]) && numericContext(runes[i+1]) {
			runes[i] = repl
		}
	}
	return string(runes)
}

func numericContext(r rune) bool {
	return (r >= '0' && r <= '9') || r == ','
}
