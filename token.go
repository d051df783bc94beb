package timec

// token is one unit of a format template: a literal text run or a single
// %-specifier. Tokenizing never fails; an unrecognized specifier letter is a
// dispatch-time error, not a scan-time one.
type token struct {
	literal bool
	text    string // literal text when literal is true
	letter  byte   // specifier letter otherwise
	noPad   bool   // %-d: suppress leading zero/space padding
	alt     bool   // %Od / %Ed: locale-alternate marker, consumed but not distinct
}

func literalToken(text string) token { return token{literal: true, text: text} }

// tokenize splits a template into literal runs and specifiers. A % introduces
// a specifier; %- sets the no-pad flag, %O and %E consume one more character
// as a combined letter. A trailing lone % is kept as literal text.
func tokenize(format string) []token {
	var tokens []token
	start := 0
	i := 0
	flush := func(end int) {
		if end > start {
			tokens = append(tokens, literalToken(format[start:end]))
		}
	}
	for i < len(format) {
		if format[i] != '%' {
			i++
			continue
		}
		flush(i)
		if i+1 >= len(format) {
			tokens = append(tokens, literalToken("%"))
			i++
			start = i
			continue
		}
		c := format[i+1]
		switch c {
		case '-':
			if i+2 >= len(format) {
				tokens = append(tokens, literalToken(format[i:]))
				i = len(format)
			} else {
				tokens = append(tokens, token{letter: format[i+2], noPad: true})
				i += 3
			}
		case 'O', 'E':
			if i+2 >= len(format) {
				tokens = append(tokens, literalToken(format[i:]))
				i = len(format)
			} else {
				tokens = append(tokens, token{letter: format[i+2], alt: true})
				i += 3
			}
		default:
			tokens = append(tokens, token{letter: c})
			i += 2
		}
		start = i
	}
	flush(i)
	return tokens
}

func (t token) specifier() string {
	return "%" + string(t.letter)
}
