package main

import (
	"errors"
	"io"
	"os"

	"github.com/aryanA101a/synacor-vm-go/logging"

	"github.com/jessevdk/go-flags"
)

const (
	exitSuccess     = 0
	exitError       = 1
	exitInterrupted = 130
)

type Options struct {
	LogLevel logging.LogLevel `short:"l" long:"loglevel" env:"SYNVM_LOGLEVEL" description:"Set the level of logging" choice:"none" choice:"info" choice:"debug" default:"info"`
}

var (
	opts        Options
	flagsparser = flags.NewParser(&opts, flags.Default)
)

func main() {
	flagsparser.CommandHandler = func(command flags.Commander, args []string) error {
		return executeCommand(command, args, os.Stderr)
	}

	if _, err := flagsparser.Parse(); err != nil {
		var flagsErr *flags.Error
		switch {
		case errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp:
			os.Exit(exitSuccess)
		case errors.Is(err, errInterrupted):
			os.Exit(exitInterrupted)
		default:
			os.Exit(exitError)
		}
	}
}

// executeCommand sets up logging on sink and runs command, logging any
// error it returns. go-flags prints the error as well.
func executeCommand(command flags.Commander, args []string, sink io.Writer) error {
	logging.SetupWriter(opts.LogLevel, sink)
	err := command.Execute(args)
	if !errors.Is(err, errInterrupted) {
		logging.LogErr(err, "command failed")
	}
	return err
}
