package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/storacha/go-cryptoutil/core/digest"
	"github.com/storacha/go-cryptoutil/core/digest/multihash"
	"github.com/storacha/go-cryptoutil/core/hex"
)

func runDigest(e *env, args []string) error {
	flags, level := newFlagSet(e, "digest")
	algorithm := flags.StringP("algorithm", "a", "SHA-256", "digest algorithm name")
	asMultihash := flags.Bool("multihash", false, "print the multihash instead of the raw digest")
	if err := parse(flags, level, args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	d, err := digest.New(*algorithm)
	if err != nil {
		return err
	}

	files := flags.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, name := range files {
		d.Reset()
		out, err := digestFile(e, d, name, *asMultihash)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "%s  %s\n", out, name)
	}
	return nil
}

func digestFile(e *env, d digest.Digest, name string, asMultihash bool) (string, error) {
	var r io.Reader = e.stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", name, err)
		}
		defer f.Close()
		r = f
	}
	if _, err := io.Copy(d, r); err != nil {
		return "", fmt.Errorf("hashing %s: %w", name, err)
	}
	if asMultihash {
		m, err := multihash.Encode(d)
		if err != nil {
			return "", err
		}
		return hex.Encode(m.Bytes()), nil
	}
	sum, err := d.Sum()
	if err != nil {
		return "", err
	}
	return hex.Encode(sum), nil
}

func runAlgorithms(e *env, args []string) error {
	flags, level := newFlagSet(e, "algorithms")
	if err := parse(flags, level, args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	for _, name := range digest.Algorithms() {
		fmt.Fprintln(e.stdout, name)
	}
	return nil
}
