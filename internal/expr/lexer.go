package expr

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	}
	return "unknown"
}

type token struct {
	kind tokenKind
	pos  int
	text string
	num  float64
}

// lex splits src into tokens. The final token is always tokEOF.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '+':
			toks = append(toks, token{kind: tokPlus, pos: i, text: "+"})
			i++
		case r == '-':
			toks = append(toks, token{kind: tokMinus, pos: i, text: "-"})
			i++
		case r == '*':
			toks = append(toks, token{kind: tokStar, pos: i, text: "*"})
			i++
		case r == '/':
			toks = append(toks, token{kind: tokSlash, pos: i, text: "/"})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, pos: i, text: "("})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, pos: i, text: ")"})
			i++
		case isDigit(r) || r == '.':
			end := scanNumber(src, i)
			text := src[i:end]
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &SyntaxError{Input: src, Pos: i, Msg: "invalid number " + strconv.Quote(text)}
			}
			toks = append(toks, token{kind: tokNumber, pos: i, text: text, num: v})
			i = end
		case r == '_' || unicode.IsLetter(r):
			end := i + size
			for end < len(src) {
				r2, s2 := utf8.DecodeRuneInString(src[end:])
				if r2 != '_' && !unicode.IsLetter(r2) && !unicode.IsDigit(r2) {
					break
				}
				end += s2
			}
			toks = append(toks, token{kind: tokIdent, pos: i, text: src[i:end]})
			i = end
		default:
			return nil, &SyntaxError{Input: src, Pos: i, Msg: "unexpected character " + strconv.QuoteRune(r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

// scanNumber returns the end offset of the numeric literal starting at i.
// Accepts digits, one decimal point and an optional exponent.
func scanNumber(src string, i int) int {
	end := i
	for end < len(src) && (isDigit(rune(src[end])) || src[end] == '.') {
		end++
	}
	if end < len(src) && (src[end] == 'e' || src[end] == 'E') {
		j := end + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(rune(src[j])) {
			for j < len(src) && isDigit(rune(src[j])) {
				j++
			}
			end = j
		}
	}
	return end
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
