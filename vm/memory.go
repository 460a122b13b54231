package vm

// Word is the machine's 16-bit cell. Program-visible values stay in 0..MaxValue.
type Word uint16

const (
	MemorySize    = 1 << 15
	RegisterCount = 8
	RegisterBase  = MemorySize                   // address of r0
	AddressLimit  = RegisterBase + RegisterCount // first invalid address
	ValueModulus  = 1 << 15
	MaxValue      = ValueModulus - 1
)

type store int

const (
	storeNone store = iota
	storeMemory
	storeRegister
)

// locate decodes addr in the unified address space. Every read, write,
// fetch and operand resolution goes through here.
func locate(addr Word) (store, int) {
	switch {
	case addr < RegisterBase:
		return storeMemory, int(addr)
	case addr < AddressLimit:
		return storeRegister, int(addr - RegisterBase)
	default:
		return storeNone, 0
	}
}

type memory struct {
	ram       [MemorySize]Word
	registers [RegisterCount]Word
}

func (mem *memory) read(addr Word) (Word, error) {
	switch s, i := locate(addr); s {
	case storeMemory:
		return mem.ram[i], nil
	case storeRegister:
		return mem.registers[i], nil
	}
	return 0, &Error{Errno: InvalidAddress, Addr: addr}
}

func (mem *memory) write(addr, value Word) error {
	switch s, i := locate(addr); s {
	case storeMemory:
		mem.ram[i] = value
	case storeRegister:
		mem.registers[i] = value
	default:
		return &Error{Errno: InvalidAddress, Addr: addr}
	}
	return nil
}

// fetch reads the instruction stream, which lives in memory cells only.
func (mem *memory) fetch(addr Word) (Word, error) {
	if s, i := locate(addr); s == storeMemory {
		return mem.ram[i], nil
	}
	return 0, &Error{Errno: InvalidAddress, Addr: addr}
}

// resolve turns a value operand into the value it denotes: a literal for
// 0..32767, the register contents for 32768..32775.
func (mem *memory) resolve(operand Word) (Word, error) {
	switch s, i := locate(operand); s {
	case storeMemory:
		return operand, nil
	case storeRegister:
		return mem.registers[i], nil
	}
	return 0, &Error{Errno: InvalidOperand, Addr: operand}
}

func (mem *memory) reset() {
	mem.ram = [MemorySize]Word{}
	mem.registers = [RegisterCount]Word{}
}
