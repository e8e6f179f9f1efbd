/*
Package mini parses and writes MINI configuration files.

A MINI file is a sequence of sections introduced by bracketed dotted paths.
Each section holds key/value pairs whose type follows from how the value is
written:

	# window settings
	[game.window]
	title = "Portal"
	width = 1_920
	mask = ffh
	flags = 1010b
	scale = 1.5f
	vsync = true
	sizes = [640, 800]

Quoted text is a string, a trailing h or b marks a hexadecimal or binary
integer, a trailing f marks a float, and bracketed lists are arrays whose
elements share one type. Comments take a whole line and attach to the
section header or value that follows them.

The package offers two workflows.

1. Full-Fidelity Documents

Parse, ReadFile and WriteFile work with an *ast.Document. The tree keeps
comments, key order and the radix every integer was written in, so a
parsed document formats back to the same text:

	doc, err := mini.ReadFile("game.mini")
	if err != nil {
		// handle error
	}
	width := doc.Root.IntOr("game.window.width", 1280)
	if err := mini.WriteFile("game.mini", doc); err != nil {
		// handle error
	}

2. Data-Oriented Decoding and Encoding

Unmarshal and Marshal map sections onto Go structs and maps, mirroring the
standard encoding/json package:

	type Window struct {
		Title string `mini:"title"`
		Width int    `mini:"width"`
	}
	type Config struct {
		Window Window `mini:"window"`
	}

	var cfg struct {
		Game Config `mini:"game"`
	}
	if err := mini.Unmarshal(data, &cfg); err != nil {
		// handle error
	}

Customization is available via struct field tags (e.g.,
`mini:"key,omitempty"`) and by implementing the mini.Marshaler and
mini.Unmarshaler interfaces.

Errors produced while parsing are *errors.Error values from the
github.com/KimNorgaard/go-mini/errors package. They carry the failure kind
and the line number, and match their kind with errors.Is.
*/
package mini
