package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/KimNorgaard/go-mini"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Verbose bool `cli:"name=v aliases=verbose desc='log parser and formatter diagnostics'"`
	Color   bool `cli:"name=color desc='color output even when not writing to a terminal'"`

	Log  *slog.Logger
	Main *cli.Command
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.Log
}

// options returns the engine options shared by every subcommand.
func (cfg *MainConfig) options(extra ...mini.Option) []mini.Option {
	return append([]mini.Option{mini.WithLogger(cfg.logger())}, extra...)
}

func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type FmtConfig struct {
	*MainConfig

	Write bool `cli:"name=w desc='write result to the source file instead of stdout'"`
	Diff  bool `cli:"name=d desc='display a diff instead of the formatted text'"`
	Sort  bool `cli:"name=s aliases=sort desc='sort keys and section names'"`

	Fmt *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q desc='do not report files that are ok'"`

	Check *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Format string

	Convert *cli.Command
}

// formatFunc parses the -O argument of convert.
func (cfg *ConvertConfig) formatFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := parseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Format = f
		return f, nil
	})
}

func parseFormat(v string) (string, error) {
	switch strings.ToLower(v) {
	case "json", "j":
		return "json", nil
	case "yaml", "yml", "y":
		return "yaml", nil
	case "toml", "t":
		return "toml", nil
	}
	return "", fmt.Errorf("unknown output format %q", v)
}

type QueryConfig struct {
	*MainConfig

	Exit bool `cli:"name=e desc='exit with status 1 when a result is false or nil'"`

	Query *cli.Command
}
