package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-mini"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/scott-cotton/cli"
)

var encoders = map[string]func(any) ([]byte, error){
	"json": func(v any) ([]byte, error) {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	},
	"yaml": yaml.Marshal,
	"toml": toml.Marshal,
}

func convertMain(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, name := range inputs(args) {
		if err := convertFile(cfg, cc.Out, name); err != nil {
			return err
		}
	}
	return nil
}

func convertFile(cfg *ConvertConfig, w io.Writer, name string) error {
	enc, ok := encoders[cfg.Format]
	if !ok {
		return fmt.Errorf("%w: unknown output format %q", cli.ErrUsage, cfg.Format)
	}
	doc, err := loadDoc(cfg.MainConfig, name)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(name), err)
	}
	out, err := enc(mini.ToMap(doc))
	if err != nil {
		return fmt.Errorf("error encoding %s as %s: %w", displayName(name), cfg.Format, err)
	}
	_, err = w.Write(out)
	return err
}
