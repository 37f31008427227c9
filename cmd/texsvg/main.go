// Command texsvg renders a LaTeX formula to SVG (optionally PNG), or
// to MathML when built without the native engine.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/wudi/texsvg"
	"github.com/wudi/texsvg/mathml"
	"github.com/wudi/texsvg/observability"
	"github.com/wudi/texsvg/raster"
)

type options struct {
	formula  string
	file     string
	out      string
	pngOut   string
	dpi      int
	color    string
	metrics  bool
	mathml   bool
	verbose  bool
	pngWidth int
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "texsvg: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "texsvg: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("texsvg", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: texsvg [flags] <formula>\n")
		fs.PrintDefaults()
	}
	fs.StringVarP(&opts.file, "file", "f", "", "Read the formula from a file instead of the argument")
	fs.StringVarP(&opts.out, "out", "o", "-", "Output path for the SVG (\"-\" for stdout)")
	fs.StringVar(&opts.pngOut, "png", "", "Also rasterize to PNG at this path")
	fs.IntVar(&opts.pngWidth, "png-width", 0, "PNG width in pixels (0 keeps the intrinsic size)")
	fs.IntVar(&opts.dpi, "dpi", 720, "Rendering DPI")
	fs.StringVar(&opts.color, "color", "ff000000", "Text color as hex ARGB")
	fs.BoolVar(&opts.metrics, "metrics", false, "Print box-tree metrics as JSON on stderr")
	fs.BoolVar(&opts.mathml, "mathml", false, "Emit MathML instead of SVG (no native engine needed)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Log renderer diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.file == "" {
		if fs.NArg() != 1 {
			fs.Usage()
			return opts, fmt.Errorf("expected exactly one formula argument")
		}
		opts.formula = fs.Arg(0)
	} else {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return opts, err
		}
		opts.formula = strings.TrimSpace(string(data))
	}
	return opts, nil
}

func run(opts options) error {
	if opts.mathml {
		out, err := mathml.FromLaTeX(opts.formula)
		if err != nil {
			return fmt.Errorf("mathml conversion: %w", err)
		}
		return writeOutput(opts.out, []byte(out))
	}

	color, err := strconv.ParseUint(opts.color, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", opts.color, err)
	}

	var rendererOpts []texsvg.Option
	if opts.verbose {
		rendererOpts = append(rendererOpts, texsvg.WithLogger(observability.NewWriterLogger(os.Stderr)))
	}
	r, err := texsvg.New(rendererOpts...)
	if err != nil {
		return err
	}
	defer r.Close()

	cfg := texsvg.DefaultConfig()
	cfg.DPI = opts.dpi
	cfg.TextColor = uint32(color)

	var svg string
	if opts.metrics {
		res, err := r.RenderWithMetrics(opts.formula, &cfg)
		if err != nil {
			return err
		}
		svg = res.SVG
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Metrics  texsvg.Metrics         `json:"metrics"`
			KeyChars *texsvg.KeyCharMetrics `json:"key_chars,omitempty"`
		}{res.Metrics, res.KeyChars}); err != nil {
			return err
		}
	} else {
		svg, err = r.Render(opts.formula, &cfg)
		if err != nil {
			return err
		}
	}

	if err := writeOutput(opts.out, []byte(svg)); err != nil {
		return err
	}

	if opts.pngOut != "" {
		data, err := raster.PNG([]byte(svg), opts.pngWidth, 0)
		if err != nil {
			return fmt.Errorf("rasterize: %w", err)
		}
		if err := os.WriteFile(opts.pngOut, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
