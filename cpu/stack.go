package cpu

// Stack is the CPU byte stack, used for call return addresses and
// PUSH/POP operands. It grows without limit.
type Stack struct {
	Data []byte
}

func (s *Stack) Push(value byte) {
	s.Data = append(s.Data, value)
}

func (s *Stack) Pop() (value byte, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Peek() (value byte, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}
