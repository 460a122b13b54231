package vm

import "fmt"

// Errno identifies the kind of fault that stopped the machine.
type Errno int

const (
	InvalidAddress Errno = iota + 1
	InvalidOperand
	StackUnderflow
	DivideByZero
	IOFailure
	InvalidOpcode
)

var strError = map[Errno]string{
	InvalidAddress: "invalid address",
	InvalidOperand: "invalid operand",
	StackUnderflow: "stack underflow",
	DivideByZero:   "divide by zero",
	IOFailure:      "I/O failure",
	InvalidOpcode:  "invalid opcode",
}

func (e Errno) Error() string {
	if s, ok := strError[e]; ok {
		return s
	}
	return fmt.Sprintf("errno %d", int(e))
}

// Error describes a fault together with the machine context it was
// raised in.
type Error struct {
	Errno  Errno  // nature of the fault
	Err    error  // underlying cause when Errno is IOFailure
	PC     Word   // cursor of the faulting instruction
	Opcode Opcode // instruction that faulted
	Addr   Word   // offending address or operand
}

func (e *Error) Error() string {
	msg := e.Errno.Error()
	switch e.Errno {
	case InvalidAddress, InvalidOperand:
		msg += fmt.Sprintf(" %d", e.Addr)
	case IOFailure:
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
	}
	return fmt.Sprintf("%s at %d (%s)", msg, e.PC, e.Opcode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a fault against its Errno.
func (e *Error) Is(target error) bool {
	n, ok := target.(Errno)
	return ok && n == e.Errno
}

func ioError(err error) error {
	return &Error{Errno: IOFailure, Err: err}
}
