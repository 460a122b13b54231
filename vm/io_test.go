package vm

import (
	"bytes"
	"errors"
	goIO "io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainReaderLines(t *testing.T) {
	var prompts bytes.Buffer
	r := NewLineReader(strings.NewReader("north\ntake lamp"), "> ", &prompts)

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "north\n", string(line))

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "take lamp", string(line))

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, goIO.EOF)
	assert.Equal(t, "> > > ", prompts.String())
}

func TestPlainReaderWithoutPrompt(t *testing.T) {
	r := NewLineReader(strings.NewReader("x\n"), "", nil)
	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(line))
}

func TestConsoleDispensesOneCharacterAtATime(t *testing.T) {
	c := newConsole(NewLineReader(strings.NewReader("hi\nyo\n"), "", nil), nil)

	var got []Word
	for i := 0; i < 6; i++ {
		w, err := c.next()
		require.NoError(t, err)
		got = append(got, w)
		if i == 0 {
			// the whole first line is queued before the first character is handed out
			assert.Equal(t, []Word{'i', '\n'}, c.queue)
		}
	}
	assert.Equal(t, []Word{'h', 'i', '\n', 'y', 'o', '\n'}, got)

	_, err := c.next()
	assert.True(t, errors.Is(err, IOFailure))
}

func TestConsoleWithoutInput(t *testing.T) {
	c := newConsole(nil, nil)
	_, err := c.next()
	assert.True(t, errors.Is(err, IOFailure))
}

func TestConsoleEmptyLineIsFailure(t *testing.T) {
	c := newConsole(&scriptedLines{lines: []string{""}}, nil)
	_, err := c.next()
	assert.True(t, errors.Is(err, IOFailure))
}

func TestConsoleEmitLowByte(t *testing.T) {
	var out bytes.Buffer
	c := newConsole(nil, &out)
	require.NoError(t, c.emit('A'))
	require.NoError(t, c.emit(0x7F00|'B'))
	assert.Equal(t, "AB", out.String())
}

func TestConsoleDecodesCharacters(t *testing.T) {
	c := newConsole(&scriptedLines{lines: []string{"é€\n"}}, nil)

	var got []Word
	for i := 0; i < 3; i++ {
		w, err := c.next()
		require.NoError(t, err)
		got = append(got, w)
	}
	assert.Equal(t, []Word{0xE9, 0x20AC, '\n'}, got)
	assert.Empty(t, c.queue)
}
