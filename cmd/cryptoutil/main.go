// Command cryptoutil exposes the hex codec, nonce generator and digest
// registry on the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/pflag"
)

var log = logging.Logger("cryptoutil/cmd")

// usageError marks errors caused by bad invocation. They exit with status 2.
type usageError struct {
	msg string
}

func (e usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return usageError{fmt.Sprintf(format, args...)}
}

type command struct {
	summary string
	run     func(env *env, args []string) error
}

var commands = map[string]command{
	"hex":        {"encode or decode hexadecimal text", runHex},
	"nonce":      {"generate nonce material", runNonce},
	"digest":     {"compute message digests of files or stdin", runDigest},
	"algorithms": {"list registered digest algorithms", runAlgorithms},
	"sources":    {"list registered nonce sources", runSources},
}

var commandOrder = []string{"hex", "nonce", "digest", "algorithms", "sources"}

// env carries the process streams so commands can be run in tests.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	e := &env{os.Stdin, os.Stdout, os.Stderr}
	if err := run(e, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var uerr usageError
		if errors.As(err, &uerr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(e *env, args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(e.stderr)
		if len(args) == 0 {
			return usagef("missing command")
		}
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		printUsage(e.stderr)
		return usagef("unknown command: %s", args[0])
	}
	return cmd.run(e, args[1:])
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage:\n  cryptoutil <command> [flags] [args]\n\nCommands:\n")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-11s %s\n", name, commands[name].summary)
	}
}

// newFlagSet returns a flag set with the flags every command shares.
func newFlagSet(e *env, name string) (*pflag.FlagSet, *string) {
	flags := pflag.NewFlagSet("cryptoutil "+name, pflag.ContinueOnError)
	flags.SetOutput(e.stderr)
	level := flags.String("log-level", "error", "log level: debug, info, warn or error")
	return flags, level
}

// parse parses args and applies the log level.
func parse(flags *pflag.FlagSet, level *string, args []string) error {
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return usagef("%v", err)
	}
	lvl, err := logging.LevelFromString(*level)
	if err != nil {
		return usagef("invalid --log-level %q", *level)
	}
	logging.SetAllLoggers(lvl)
	return nil
}
