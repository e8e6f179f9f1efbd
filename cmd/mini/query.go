package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-mini"
	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"
)

func queryMain(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires one argument, an expression", cli.ErrUsage)
	}
	code := args[0]
	falsy := false
	for _, name := range inputs(args[1:]) {
		res, err := queryFile(cfg, cc.Out, name, code)
		if err != nil {
			return err
		}
		if res == nil || res == false {
			falsy = true
		}
	}
	if cfg.Exit && falsy {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// queryFile evaluates code with the top-level sections of the named file as
// variables and prints the result.
func queryFile(cfg *QueryConfig, w io.Writer, name, code string) (any, error) {
	doc, err := loadDoc(cfg.MainConfig, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(name), err)
	}
	env := mini.ToMap(doc)
	prg, err := expr.Compile(code, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", code, err)
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q on %s: %w", code, displayName(name), err)
	}
	cfg.logger().Debug("query", "path", displayName(name), "result", res)
	return res, writeResult(w, res)
}

func writeResult(w io.Writer, res any) error {
	switch res.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	_, err := fmt.Fprintln(w, res)
	return err
}
