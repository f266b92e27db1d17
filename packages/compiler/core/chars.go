package core

// Character code constants
const (
	CharEOF    = 0
	CharTAB    = 9
	CharLF     = 10
	CharVTAB   = 11
	CharFF     = 12
	CharCR     = 13
	CharSPACE  = 32
	CharBANG   = 33
	CharDQ     = 34
	CharDollar = 36
	CharSQ     = 39
	CharMINUS  = 45
	CharPERIOD = 46
	CharSLASH  = 47
	CharCOLON  = 58
	CharLT     = 60
	CharEQ     = 61
	CharGT     = 62
	CharQUESTION = 63
	CharAT       = 64

	Char0 = 48
	Char9 = 57

	CharA = 65
	CharZ = 90

	CharRBRACKET   = 93
	CharUnderscore = 95
	CharBT         = 96

	CharLowerA = 97
	CharLowerZ = 122

	CharLBRACE = 123
	CharRBRACE = 125
	CharNBSP   = 160
	CharDEL    = 127
)

// Smart (typographic) double quotes, often pasted in from word processors.
const (
	SmartQuoteOpen  = 0x201C
	SmartQuoteClose = 0x201D
)

// IsWhitespace checks if a character code represents whitespace
func IsWhitespace(code int) bool {
	return (code >= CharTAB && code <= CharSPACE) || code == CharNBSP
}

// IsDigit checks if a character code represents a digit
func IsDigit(code int) bool {
	return Char0 <= code && code <= Char9
}

// IsAsciiLetter checks if a character code represents an ASCII letter
func IsAsciiLetter(code int) bool {
	return (code >= CharLowerA && code <= CharLowerZ) || (code >= CharA && code <= CharZ)
}

// IsNewLine checks if a character code represents a newline
func IsNewLine(code int) bool {
	return code == CharLF || code == CharCR
}

// IsQuote checks if a character code represents a quote character
func IsQuote(code int) bool {
	return code == CharSQ || code == CharDQ || code == CharBT
}

// IsControl checks if a character code is an ASCII control character
func IsControl(code int) bool {
	return (code >= 0 && code < CharTAB) || (code > CharCR && code < CharSPACE) || code == CharDEL
}

// IsSmartQuote checks if a rune is a typographic double quote
func IsSmartQuote(r rune) bool {
	return r == SmartQuoteOpen || r == SmartQuoteClose
}

// IsTagIdentifierChar checks if a character code may appear while scanning a
// tag or attribute name. Delimiters, whitespace and control characters end
// the scan; validation of the collected name happens separately.
func IsTagIdentifierChar(code int) bool {
	if IsWhitespace(code) || IsControl(code) {
		return false
	}
	switch code {
	case CharGT, CharEQ, CharSLASH:
		return false
	}
	return true
}

// IsUnquotedValueChar checks if a character code may appear inside an
// unquoted attribute value.
func IsUnquotedValueChar(code int) bool {
	if IsWhitespace(code) {
		return false
	}
	switch code {
	case CharLT, CharGT, CharEQ, CharSQ, CharDQ, CharBT:
		return false
	}
	return true
}

// IsUnquotedValueDelimiter checks if a character code legally terminates an
// unquoted attribute value.
func IsUnquotedValueDelimiter(code int) bool {
	return IsWhitespace(code) || code == CharGT
}
