package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/aryanA101a/synacor-vm-go/logging"
	"github.com/aryanA101a/synacor-vm-go/vm"

	"github.com/chzyer/readline"
)

var errInterrupted = errors.New("interrupted")

type RunCommand struct {
	Strict  bool   `long:"strict" description:"Fail on unknown opcodes instead of skipping them"`
	Trace   bool   `short:"t" long:"trace" description:"Log every executed instruction (needs --loglevel=debug)"`
	Prompt  string `short:"p" long:"prompt" description:"Prompt shown when the program waits for a line of input"`
	NoEdit  bool   `long:"no-edit" description:"Read input without line editing even on a terminal"`
	History string `long:"history" description:"File to keep input history in when line editing"`
	Args    struct {
		Image string `positional-arg-name:"IMAGE" required:"yes"`
	} `positional-args:"yes"`
}

var runCommand RunCommand

type outcome struct {
	halt vm.Halt
	err  error
}

func (cmd *RunCommand) Execute(args []string) error {
	f, err := os.Open(cmd.Args.Image)
	if err != nil {
		return fmt.Errorf("failed to open program image %s: %w", cmd.Args.Image, err)
	}
	program, err := vm.ReadImage(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to load image %s: %w", cmd.Args.Image, err)
	}

	terminal := vm.NewTerminal(os.Stdin)
	input, closeInput, err := cmd.openInput(terminal)
	if err != nil {
		return err
	}
	defer closeInput()
	defer func() {
		logging.LogErr(terminal.Restore(), "failed to restore terminal")
	}()

	return cmd.run(program, input, os.Stdout, terminal)
}

// run executes program until it halts, faults or is interrupted, either
// by SIGINT or by Ctrl-C inside the line editor.
func (cmd *RunCommand) run(program []vm.Word, input vm.LineReader, output io.Writer, terminal *vm.Terminal) error {
	machine := vm.NewVM(vm.Config{
		Input:  input,
		Output: output,
		Strict: cmd.Strict,
		Trace:  cmd.Trace,
	})
	if err := machine.Load(program); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	done := make(chan outcome, 1)
	go func() {
		halt, err := machine.Run()
		done <- outcome{halt, err}
	}()

	select {
	case <-ctx.Done():
		logging.LogErr(terminal.Restore(), "failed to restore terminal")
		logging.Log(logging.LogLevelInfo, "interrupted")
		return errInterrupted
	case res := <-done:
		if errors.Is(res.err, readline.ErrInterrupt) {
			logging.Log(logging.LogLevelInfo, "interrupted at input")
			return errInterrupted
		}
		if res.err != nil {
			return fmt.Errorf("program aborted: %w", res.err)
		}
		fmt.Fprintf(os.Stderr, "\n%s\n", res.halt)
		logging.Log(logging.LogLevelInfo, "program halted", "pc", res.halt.PC, "steps", res.halt.Steps, "registers", machine.Registers())
		return nil
	}
}

// openInput picks a line editor for interactive terminals and a plain
// buffered reader otherwise.
func (cmd *RunCommand) openInput(terminal *vm.Terminal) (vm.LineReader, func(), error) {
	if !terminal.IsTerminal() {
		return vm.NewLineReader(os.Stdin, cmd.Prompt, os.Stderr), func() {}, nil
	}
	if cmd.NoEdit {
		if err := terminal.EnableLineMode(); err != nil {
			return nil, nil, fmt.Errorf("failed to configure terminal: %w", err)
		}
		return vm.NewLineReader(os.Stdin, cmd.Prompt, os.Stderr), func() {}, nil
	}
	rl, err := vm.NewReadlineReader(cmd.Prompt, cmd.History)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start line editor: %w", err)
	}
	return rl, func() {
		logging.LogErr(rl.Close(), "failed to close line editor")
	}, nil
}

func init() {
	flagsparser.AddCommand(
		"run",
		"Run a program image",
		"Loads a binary program image of little-endian 16-bit words at address 0 and executes it until it halts",
		&runCommand,
	)
}
