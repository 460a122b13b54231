package vm

// stack is the operand and return-address stack. It grows without bound.
type stack []Word

func (s *stack) push(w Word) {
	*s = append(*s, w)
}

// pop reports false on an empty stack; the caller decides whether that
// is a fault or a halt.
func (s *stack) pop() (Word, bool) {
	if len(*s) == 0 {
		return 0, false
	}
	var w Word
	*s, w = (*s)[:len(*s)-1], (*s)[len(*s)-1]
	return w, true
}

func (s stack) depth() int {
	return len(s)
}

func (s *stack) clear() {
	*s = (*s)[:0]
}
