package cfg

// bracketStack tracks the scope-opening brackets ('[', '(' or '{') the parser
// is currently inside. The innermost open bracket decides which separators and
// closers are legal after a value.
type bracketStack []byte

func (s *bracketStack) push(b byte) {
	*s = append(*s, b)
}

func (s *bracketStack) pop() {
	if n := len(*s); n > 0 {
		*s = (*s)[:n-1]
	}
}

// peek returns the innermost open bracket, or 0 when no container is open.
func (s *bracketStack) peek() byte {
	if n := len(*s); n > 0 {
		return (*s)[n-1]
	}
	return 0
}
