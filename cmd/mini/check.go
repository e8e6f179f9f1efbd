package main

import (
	"errors"
	"fmt"
	"io"

	minierrors "github.com/KimNorgaard/go-mini/errors"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func checkMain(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	failed := 0
	for _, name := range inputs(args) {
		ok, err := checkFile(cfg, cc.Out, name)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkFile parses one file and reports the outcome to w as
// "name: ok" or "name:line: message".
func checkFile(cfg *CheckConfig, w io.Writer, name string) (bool, error) {
	_, perr := loadDoc(cfg.MainConfig, name)
	if perr == nil {
		if cfg.Quiet {
			return true, nil
		}
		_, err := fmt.Fprintf(w, "%s: ok\n", displayName(name))
		return true, err
	}

	loc := displayName(name)
	if line := minierrors.LineOf(perr); line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, line)
	}
	msg := perr.Error()
	var e *minierrors.Error
	if errors.As(perr, &e) {
		msg = e.Kind.Error()
		if e.Text != "" {
			msg += ": " + e.Text
		}
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
	}

	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	if cfg.colorize(w) {
		bold.EnableColor()
		red.EnableColor()
	} else {
		bold.DisableColor()
		red.DisableColor()
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", bold.Sprint(loc), red.Sprint(msg))
	return false, err
}
