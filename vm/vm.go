package vm

import (
	"fmt"
	goIO "io"

	"github.com/aryanA101a/synacor-vm-go/logging"
)

// Config wires a VM to its surroundings.
type Config struct {
	Input  LineReader  // source of input lines for the in opcode
	Output goIO.Writer // receives one byte per out opcode
	Strict bool        // fail on unknown opcodes instead of skipping them
	Trace  bool        // log every executed instruction at debug level
}

type VM struct {
	memory *memory
	cpu    cpu
}

func NewVM(cfg Config) *VM {
	mem := &memory{}
	vm := &VM{
		memory: mem,
		cpu:    newCpu(mem, newConsole(cfg.Input, cfg.Output)),
	}
	vm.cpu.strict = cfg.Strict
	vm.cpu.trace = cfg.Trace
	return vm
}

// Load resets the machine and copies program into memory starting at
// address 0.
func (vm *VM) Load(program []Word) error {
	if len(program) > MemorySize {
		return fmt.Errorf("%w: %d words", ErrImageTooLarge, len(program))
	}
	vm.memory.reset()
	copy(vm.memory.ram[:], program)
	vm.cpu.stack.clear()
	vm.cpu.io.queue = nil
	vm.cpu.internalRegisters.pc = 0
	vm.cpu.internalRegisters.count = 0
	vm.cpu.halt = Halt{}
	logging.Log(logging.LogLevelInfo, "program loaded", "words", len(program))
	return nil
}

// LoadImage decodes a program image from r and loads it.
func (vm *VM) LoadImage(r goIO.Reader) error {
	program, err := ReadImage(r)
	if err != nil {
		return err
	}
	return vm.Load(program)
}

// Run executes until the program halts or faults. A graceful halt is
// reported through Halt; faults come back as *Error.
func (vm *VM) Run() (Halt, error) {
	return vm.cpu.start()
}

func (vm *VM) PC() Word {
	return vm.cpu.internalRegisters.pc
}

func (vm *VM) Steps() uint64 {
	return vm.cpu.internalRegisters.count
}

func (vm *VM) Registers() [RegisterCount]Word {
	return vm.memory.registers
}

func (vm *VM) StackDepth() int {
	return vm.cpu.stack.depth()
}

// Read returns the word at addr in the unified address space.
func (vm *VM) Read(addr Word) (Word, error) {
	return vm.memory.read(addr)
}
