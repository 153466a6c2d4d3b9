package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"github.com/storacha/go-cryptoutil/core/hex"
)

func runHex(e *env, args []string) error {
	flags, level := newFlagSet(e, "hex")
	multibase := flags.Bool("multibase", false, "use the multibase form ('f' prefix) when encoding, accept any multibase when decoding")
	if err := parse(flags, level, args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flags.Args()
	if len(rest) == 0 || len(rest) > 2 {
		return usagef("usage: cryptoutil hex encode|decode [INPUT]")
	}
	input, err := argOrStdin(e, rest[1:])
	if err != nil {
		return err
	}

	switch rest[0] {
	case "encode":
		if *multibase {
			fmt.Fprintln(e.stdout, hex.Format(input))
		} else {
			fmt.Fprintln(e.stdout, hex.Encode(input))
		}
		return nil
	case "decode":
		text := string(bytes.TrimSpace(input))
		var out []byte
		if *multibase {
			out, err = hex.Parse(text)
		} else {
			out, err = hex.Decode(text)
		}
		if err != nil {
			return err
		}
		_, err = e.stdout.Write(out)
		return err
	default:
		return usagef("unknown hex operation: %s", rest[0])
	}
}

func argOrStdin(e *env, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}
	b, err := io.ReadAll(e.stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return b, nil
}
