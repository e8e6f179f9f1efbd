package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-mini"
	"github.com/KimNorgaard/go-mini/ast"
	"github.com/scott-cotton/cli"
)

func getMain(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	for _, name := range inputs(args[1:]) {
		if err := getPath(cfg, cc.Out, name, path); err != nil {
			return err
		}
	}
	return nil
}

// getPath prints the value at path, or the section at path together with
// its subsections.
func getPath(cfg *GetConfig, w io.Writer, name, path string) error {
	doc, err := loadDoc(cfg.MainConfig, name)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(name), err)
	}

	v, verr := doc.Root.Value(path)
	if verr == nil {
		text, err := v.Format()
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(name), err)
		}
		_, err = fmt.Fprintln(w, text)
		return err
	}

	sub, err := doc.Root.SubSection(path)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(name), verr)
	}
	tree, err := subtree(path, sub)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(name), err)
	}
	out, err := mini.Marshal(tree, cfg.options()...)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(name), err)
	}
	_, err = w.Write(out)
	return err
}

// subtree returns a document holding s at the dotted path, so that its
// headers print with their full names.
func subtree(path string, s *ast.Section) (*ast.Document, error) {
	parts := strings.Split(path, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		parent := ast.NewSection()
		if err := parent.SetSubSection(parts[i], s, false); err != nil {
			return nil, err
		}
		s = parent
	}
	return &ast.Document{Root: s}, nil
}
