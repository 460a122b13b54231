package vm

import (
	"errors"
	"fmt"

	"github.com/aryanA101a/synacor-vm-go/logging"
)

type HaltReason int

const (
	HaltInstruction HaltReason = iota // halt opcode
	HaltEmptyReturn                   // ret with no return address
)

// Halt reports a graceful end of execution.
type Halt struct {
	Reason HaltReason
	PC     Word   // cursor of the instruction that halted
	Steps  uint64 // instructions executed, including the halting one
}

func (h Halt) String() string {
	if h.Reason == HaltEmptyReturn {
		return fmt.Sprintf("return with empty stack at %d", h.PC)
	}
	return fmt.Sprintf("halt at %d", h.PC)
}

type cpu struct {
	running           bool
	memory            *memory
	stack             stack
	internalRegisters struct {
		pc    Word // cursor
		count uint64
	}
	io     console
	strict bool
	trace  bool
	halt   Halt
}

func newCpu(memory *memory, io console) cpu {
	return cpu{
		memory: memory,
		io:     io,
	}
}

func (cpu *cpu) start() (Halt, error) {
	cpu.running = true
	for cpu.running {
		if err := cpu.step(); err != nil {
			cpu.stop()
			return Halt{}, err
		}
	}
	return cpu.halt, nil
}

func (cpu *cpu) stop() {
	cpu.running = false
}

func (cpu *cpu) stopWith(reason HaltReason, pc Word) {
	cpu.halt = Halt{Reason: reason, PC: pc, Steps: cpu.internalRegisters.count}
	cpu.stop()
}

// step fetches, decodes and executes the instruction at the cursor.
func (cpu *cpu) step() error {
	pc := cpu.internalRegisters.pc
	raw, err := cpu.memory.fetch(pc)
	if err != nil {
		return cpu.fault(err, pc, 0)
	}
	op := Opcode(raw)

	var args [3]Word
	for i := 0; i < op.Arity(); i++ {
		if args[i], err = cpu.memory.fetch(pc + 1 + Word(i)); err != nil {
			return cpu.fault(err, pc, op)
		}
	}
	cpu.internalRegisters.count++

	if cpu.trace && logging.Enabled(logging.LogLevelDebug) {
		logging.Log(logging.LogLevelDebug, "exec", "pc", pc, "op", op.String(), "args", args[:op.Arity()])
	}

	next, err := cpu.execute(pc, op, args)
	if err != nil {
		return cpu.fault(err, pc, op)
	}
	cpu.internalRegisters.pc = next
	return nil
}

// execute runs op and returns the cursor of the next instruction.
// Jumps, call and ret return their absolute target unchanged.
func (cpu *cpu) execute(pc Word, op Opcode, args [3]Word) (Word, error) {
	next := pc + 1 + Word(op.Arity())
	a := args[0]

	switch op {
	case OpHalt:
		cpu.stopWith(HaltInstruction, pc)
		return pc, nil

	case OpSet:
		b, err := cpu.memory.resolve(args[1])
		if err != nil {
			return 0, err
		}
		return next, cpu.memory.write(a, b)

	case OpPush:
		v, err := cpu.memory.resolve(a)
		if err != nil {
			return 0, err
		}
		cpu.stack.push(v)

	case OpPop:
		v, ok := cpu.stack.pop()
		if !ok {
			return 0, StackUnderflow
		}
		return next, cpu.memory.write(a, v)

	case OpEq, OpGt, OpAdd, OpMult, OpMod, OpAnd, OpOr:
		b, c, err := cpu.resolve2(args[1], args[2])
		if err != nil {
			return 0, err
		}
		v, err := arithmetic(op, b, c)
		if err != nil {
			return 0, err
		}
		return next, cpu.memory.write(a, v)

	case OpNot:
		b, err := cpu.memory.resolve(args[1])
		if err != nil {
			return 0, err
		}
		return next, cpu.memory.write(a, ^b&MaxValue)

	case OpJmp:
		return cpu.memory.resolve(a)

	case OpJt, OpJf:
		cond, target, err := cpu.resolve2(a, args[1])
		if err != nil {
			return 0, err
		}
		if (op == OpJt) == (cond != 0) {
			return target, nil
		}

	case OpRmem:
		addr, err := cpu.memory.resolve(args[1])
		if err != nil {
			return 0, err
		}
		v, err := cpu.memory.read(addr)
		if err != nil {
			return 0, err
		}
		return next, cpu.memory.write(a, v)

	case OpWmem:
		addr, v, err := cpu.resolve2(a, args[1])
		if err != nil {
			return 0, err
		}
		return next, cpu.memory.write(addr, v)

	case OpCall:
		target, err := cpu.memory.resolve(a)
		if err != nil {
			return 0, err
		}
		cpu.stack.push(next)
		return target, nil

	case OpRet:
		target, ok := cpu.stack.pop()
		if !ok {
			cpu.stopWith(HaltEmptyReturn, pc)
			return pc, nil
		}
		return target, nil

	case OpOut:
		v, err := cpu.memory.resolve(a)
		if err != nil {
			return 0, err
		}
		return next, cpu.io.emit(v)

	case OpIn:
		c, err := cpu.io.next()
		if err != nil {
			return 0, err
		}
		return next, cpu.memory.write(a, c)

	case OpNoop:

	default:
		if cpu.strict {
			return 0, InvalidOpcode
		}
		logging.Log(logging.LogLevelDebug, "skipping unknown opcode", "pc", pc, "op", Word(op))
	}
	return next, nil
}

func (cpu *cpu) resolve2(x, y Word) (Word, Word, error) {
	vx, err := cpu.memory.resolve(x)
	if err != nil {
		return 0, 0, err
	}
	vy, err := cpu.memory.resolve(y)
	if err != nil {
		return 0, 0, err
	}
	return vx, vy, nil
}

func arithmetic(op Opcode, b, c Word) (Word, error) {
	switch op {
	case OpEq:
		return boolWord(b == c), nil
	case OpGt:
		return boolWord(b > c), nil
	case OpAdd:
		return Word((uint32(b) + uint32(c)) % ValueModulus), nil
	case OpMult:
		return Word((uint32(b) * uint32(c)) % ValueModulus), nil
	case OpMod:
		if c == 0 {
			return 0, DivideByZero
		}
		return b % c, nil
	case OpAnd:
		return b & c, nil
	case OpOr:
		return b | c, nil
	}
	return 0, InvalidOpcode
}

func boolWord(v bool) Word {
	if v {
		return 1
	}
	return 0
}

// fault attaches the machine context to err.
func (cpu *cpu) fault(err error, pc Word, op Opcode) error {
	var e *Error
	if !errors.As(err, &e) {
		var errno Errno
		if !errors.As(err, &errno) {
			errno = IOFailure
		}
		e = &Error{Errno: errno}
		if errno == IOFailure {
			e.Err = err
		}
	}
	e.PC = pc
	e.Opcode = op
	return e
}
