package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

const (
	cmdImport = "import"
	cmdRemove = "remove"
	cmdParse  = "parse"
)

// Exit codes other than 0 and the 1 log.Fatalf gives us
const (
	exitNoCommand  = 100
	exitBadCommand = 2
)

var errNoCommand = errors.New("No command provided")

type badCommandError struct {
	command string
}

func (e badCommandError) Error() string {
	return fmt.Sprintf("Unknown command: %v", e.command)
}

type commandArgs struct {
	command  string
	file     string
	screenID int64
}

// parseCommand - the positionals after flags are removed:
//
//	import <hdf5 file> <screen id>
//	remove [hdf5 file] <screen id>
//	parse <hdf5 file>
func parseCommand(positionals []string) (commandArgs, error) {
	if len(positionals) <= 0 {
		return commandArgs{}, errNoCommand
	}

	args := commandArgs{command: positionals[0]}
	rest := positionals[1:]

	switch args.command {
	case cmdImport:
		if len(rest) != 2 {
			return args, fmt.Errorf("%v expects an HDF5 file and a screen id", args.command)
		}
		args.file = rest[0]
		err := args.readScreenID(rest[1])
		return args, err

	case cmdRemove:
		if len(rest) == 1 {
			err := args.readScreenID(rest[0])
			return args, err
		}
		if len(rest) != 2 {
			return args, fmt.Errorf("%v expects a screen id, optionally after an HDF5 file name", args.command)
		}
		args.file = rest[0]
		err := args.readScreenID(rest[1])
		return args, err

	case cmdParse:
		if len(rest) != 1 {
			return args, fmt.Errorf("%v expects an HDF5 file", args.command)
		}
		args.file = rest[0]
		return args, nil
	}

	return args, badCommandError{command: args.command}
}

func (a *commandArgs) readScreenID(text string) error {
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid screen id: %v", text)
	}
	a.screenID = id
	return nil
}

// exitCodeFor - what to exit with when the command line couldn't be used
func exitCodeFor(err error) int {
	if errors.Is(err, errNoCommand) {
		return exitNoCommand
	}
	var bad badCommandError
	if errors.As(err, &bad) {
		return exitBadCommand
	}
	return 1
}
