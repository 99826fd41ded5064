package match

import (
	"strings"
	"unicode"
)

// Normalize folds an XML name for fuzzy comparison: the namespace prefix is
// dropped, separators are removed and the result is lower case, so that
// "ns:Order_ID", "order-id" and "OrderId" all become "orderid".
func Normalize(name string) string {
	return strings.Join(Tokens(name), "")
}

// Tokens splits an XML name into lower case words on separators and case
// changes: "XMLClassName" gives [xml class name].
func Tokens(name string) []string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}

	var (
		tokens []string
		word   []rune
	)

	flush := func() {
		if len(word) > 0 {
			tokens = append(tokens, strings.ToLower(string(word)))
			word = word[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}
		word = append(word, r)
	}
	flush()

	return tokens
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', ' ':
		return true
	}

	return false
}

// startsWord reports a lower to upper transition (orderId) or the last capital
// of an acronym followed by lower case (XMLClass).
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
