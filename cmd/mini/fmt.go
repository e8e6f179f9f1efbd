package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-mini"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func fmtMain(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Write && cfg.Diff {
		return fmt.Errorf("%w: cannot use -w and -d together", cli.ErrUsage)
	}
	for _, name := range inputs(args) {
		if err := fmtFile(cfg, cc.Out, name); err != nil {
			return err
		}
	}
	return nil
}

// fmtFile reformats one file. With -w the file is replaced only when the
// canonical text differs from the source.
func fmtFile(cfg *FmtConfig, w io.Writer, name string) error {
	if cfg.Write && name == "-" {
		return fmt.Errorf("%w: cannot use -w with standard input", cli.ErrUsage)
	}
	src, err := readInput(name)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", displayName(name), err)
	}
	doc, err := mini.Parse(src, cfg.options()...)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(name), err)
	}

	var opts []mini.Option
	if cfg.Sort {
		opts = append(opts, mini.SortKeys())
	}
	out, err := mini.Marshal(doc, cfg.options(opts...)...)
	if err != nil {
		return fmt.Errorf("error formatting %s: %w", displayName(name), err)
	}

	switch {
	case cfg.Write:
		if bytes.Equal(src, out) {
			return nil
		}
		cfg.logger().Info("rewrite", "path", name)
		return mini.WriteFile(name, doc, cfg.options(opts...)...)
	case cfg.Diff:
		return writeDiff(w, displayName(name), string(src), string(out), cfg.colorize(w))
	}
	_, err = w.Write(out)
	return err
}

// writeDiff prints a line diff between from and to. Nothing is printed
// when they are equal.
func writeDiff(w io.Writer, name, from, to string, colored bool) error {
	if from == to {
		return nil
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	header := color.New(color.Bold)
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	plain := color.New(color.Reset)
	for _, c := range []*color.Color{header, del, ins, plain} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if _, err := header.Fprintf(w, "--- %s\n+++ %s (formatted)\n", name, name); err != nil {
		return err
	}
	for _, d := range diffs {
		prefix, c := " ", plain
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", del
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", ins
		}
		for line := range strings.Lines(d.Text) {
			if _, err := c.Fprintln(w, prefix+strings.TrimSuffix(line, "\n")); err != nil {
				return err
			}
		}
	}
	return nil
}
