package main

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/storacha/go-cryptoutil/core/hex"
	"github.com/storacha/go-cryptoutil/core/nonce"
)

func runNonce(e *env, args []string) error {
	flags, level := newFlagSet(e, "nonce")
	size := flags.IntP("size", "n", 0, "emit exactly this many bytes of nonce material instead of one token")
	source := flags.StringP("source", "s", nonce.SystemName, "nonce source name")
	format := flags.String("format", "hex", "output format for --size: hex or raw")
	count := flags.IntP("count", "c", 1, "number of nonces to emit")
	if err := parse(flags, level, args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.NArg() > 0 {
		return usagef("unexpected argument: %s", flags.Arg(0))
	}
	if *size < 0 {
		return usagef("--size must not be negative")
	}
	if *count < 0 {
		return usagef("--count must not be negative")
	}
	if *format != "hex" && *format != "raw" {
		return usagef("unknown --format %q", *format)
	}

	src, err := nonce.Lookup(*source)
	if err != nil {
		return err
	}
	log.Debugw("generating nonces", "source", *source, "size", *size, "count", *count)

	for i := 0; i < *count; i++ {
		if *size == 0 {
			tok, err := src.Nonce()
			if err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, tok)
			continue
		}
		b, err := nonce.GenerateSizeFrom(src, *size)
		if err != nil {
			return err
		}
		if *format == "raw" {
			if _, err := e.stdout.Write(b); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(e.stdout, hex.Encode(b))
	}
	return nil
}

func runSources(e *env, args []string) error {
	flags, level := newFlagSet(e, "sources")
	if err := parse(flags, level, args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	for _, name := range nonce.Names() {
		fmt.Fprintln(e.stdout, name)
	}
	return nil
}
