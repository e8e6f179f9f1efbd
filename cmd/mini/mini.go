package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/KimNorgaard/go-mini"
	"github.com/KimNorgaard/go-mini/ast"
	"github.com/scott-cotton/cli"
)

func miniMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	cfg.Log = newLogger(os.Stderr, cfg.Verbose)
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// inputs returns the file arguments, defaulting to stdin.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// loadDoc parses the named file, or stdin for "-".
func loadDoc(cfg *MainConfig, name string) (*ast.Document, error) {
	if name != "-" {
		return mini.ReadFile(name, cfg.options()...)
	}
	data, err := readInput(name)
	if err != nil {
		return nil, err
	}
	return mini.Parse(data, cfg.options()...)
}
