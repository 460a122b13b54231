package vm

import (
	"encoding/binary"
	"errors"
	goIO "io"
)

var (
	ErrOddImage      = errors.New("program image has an odd number of bytes")
	ErrImageTooLarge = errors.New("program image does not fit in memory")
)

// ReadImage decodes a program image: consecutive little-endian 16-bit
// words with no header.
func ReadImage(r goIO.Reader) ([]Word, error) {
	data, err := goIO.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeImage(data)
}

func DecodeImage(data []byte) ([]Word, error) {
	if len(data)%2 != 0 {
		return nil, ErrOddImage
	}
	if len(data)/2 > MemorySize {
		return nil, ErrImageTooLarge
	}
	program := make([]Word, len(data)/2)
	for i := range program {
		program[i] = Word(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return program, nil
}
