package vm

import "fmt"

type Opcode Word

const (
	OpHalt Opcode = iota
	OpSet
	OpPush
	OpPop
	OpEq
	OpGt
	OpJmp
	OpJt
	OpJf
	OpAdd
	OpMult
	OpMod
	OpAnd
	OpOr
	OpNot
	OpRmem
	OpWmem
	OpCall
	OpRet
	OpOut
	OpIn
	OpNoop
)

var opcodes = [...]struct {
	name  string
	arity int
}{
	OpHalt: {"halt", 0},
	OpSet:  {"set", 2},
	OpPush: {"push", 1},
	OpPop:  {"pop", 1},
	OpEq:   {"eq", 3},
	OpGt:   {"gt", 3},
	OpJmp:  {"jmp", 1},
	OpJt:   {"jt", 2},
	OpJf:   {"jf", 2},
	OpAdd:  {"add", 3},
	OpMult: {"mult", 3},
	OpMod:  {"mod", 3},
	OpAnd:  {"and", 3},
	OpOr:   {"or", 3},
	OpNot:  {"not", 2},
	OpRmem: {"rmem", 2},
	OpWmem: {"wmem", 2},
	OpCall: {"call", 1},
	OpRet:  {"ret", 0},
	OpOut:  {"out", 1},
	OpIn:   {"in", 1},
	OpNoop: {"noop", 0},
}

func (op Opcode) Valid() bool {
	return int(op) < len(opcodes)
}

// Arity is the number of operand words following op. Unknown opcodes
// take none.
func (op Opcode) Arity() int {
	if !op.Valid() {
		return 0
	}
	return opcodes[op].arity
}

func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("op(%d)", Word(op))
	}
	return opcodes[op].name
}
