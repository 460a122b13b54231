package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeArity(t *testing.T) {
	want := map[Opcode]int{
		OpHalt: 0, OpSet: 2, OpPush: 1, OpPop: 1, OpEq: 3, OpGt: 3,
		OpJmp: 1, OpJt: 2, OpJf: 2, OpAdd: 3, OpMult: 3, OpMod: 3,
		OpAnd: 3, OpOr: 3, OpNot: 2, OpRmem: 2, OpWmem: 2, OpCall: 1,
		OpRet: 0, OpOut: 1, OpIn: 1, OpNoop: 0,
	}
	assert.Len(t, want, 22)
	for op, arity := range want {
		assert.Equal(t, arity, op.Arity(), op.String())
		assert.True(t, op.Valid())
	}
	assert.Equal(t, 0, Opcode(22).Arity())
	assert.False(t, Opcode(22).Valid())
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "mult", OpMult.String())
	assert.Equal(t, "noop", OpNoop.String())
	assert.Equal(t, "op(300)", Opcode(300).String())
}
