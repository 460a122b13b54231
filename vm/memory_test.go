package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		addr  Word
		store store
		index int
	}{
		{0, storeMemory, 0},
		{MaxValue, storeMemory, MaxValue},
		{RegisterBase, storeRegister, 0},
		{RegisterBase + 7, storeRegister, 7},
		{AddressLimit, storeNone, 0},
		{0xFFFF, storeNone, 0},
	}
	for _, tt := range tests {
		s, i := locate(tt.addr)
		assert.Equal(t, tt.store, s, "addr %d", tt.addr)
		assert.Equal(t, tt.index, i, "addr %d", tt.addr)
	}
}

func TestMemoryReadWrite(t *testing.T) {
	mem := &memory{}

	require.NoError(t, mem.write(10, 1234))
	require.NoError(t, mem.write(RegisterBase+3, 99))

	v, err := mem.read(10)
	require.NoError(t, err)
	assert.Equal(t, Word(1234), v)

	v, err = mem.read(RegisterBase + 3)
	require.NoError(t, err)
	assert.Equal(t, Word(99), v)
	assert.Equal(t, Word(99), mem.registers[3])
}

func TestMemoryWriteIsNotMasked(t *testing.T) {
	mem := &memory{}
	require.NoError(t, mem.write(5, 0xFFFF))
	v, _ := mem.read(5)
	assert.Equal(t, Word(0xFFFF), v)
}

func TestMemoryInvalidAddress(t *testing.T) {
	mem := &memory{}

	_, err := mem.read(AddressLimit)
	assert.True(t, errors.Is(err, InvalidAddress))

	err = mem.write(AddressLimit, 1)
	assert.True(t, errors.Is(err, InvalidAddress))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, Word(AddressLimit), e.Addr)
}

func TestMemoryAndRegistersAreDisjoint(t *testing.T) {
	mem := &memory{}
	for r := Word(0); r < RegisterCount; r++ {
		require.NoError(t, mem.write(RegisterBase+r, 0x7777))
	}
	for addr := Word(0); addr < MemorySize; addr++ {
		if mem.ram[addr] != 0 {
			t.Fatalf("register write leaked into memory cell %d", addr)
		}
	}

	mem.reset()
	for addr := Word(0); addr < MemorySize; addr += 97 {
		require.NoError(t, mem.write(addr, 0x1111))
	}
	require.NoError(t, mem.write(MaxValue, 0x1111))
	assert.Equal(t, [RegisterCount]Word{}, mem.registers)
}

func TestFetchRejectsRegisterAddresses(t *testing.T) {
	mem := &memory{}
	mem.registers[0] = 21

	_, err := mem.fetch(RegisterBase)
	assert.True(t, errors.Is(err, InvalidAddress))

	mem.ram[MaxValue] = 19
	v, err := mem.fetch(MaxValue)
	require.NoError(t, err)
	assert.Equal(t, Word(19), v)
}

func TestResolve(t *testing.T) {
	mem := &memory{}
	mem.registers[2] = 4242

	v, err := mem.resolve(123)
	require.NoError(t, err)
	assert.Equal(t, Word(123), v)

	v, err = mem.resolve(RegisterBase + 2)
	require.NoError(t, err)
	assert.Equal(t, Word(4242), v)

	_, err = mem.resolve(AddressLimit)
	assert.True(t, errors.Is(err, InvalidOperand))
}
