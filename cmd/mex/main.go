/*
mex typesets a math formula given in TeX notation and renders it to
SVG or PNG.

Usage:

	mex [flags] "formula"

The math font must carry an OpenType MATH table (e.g. Latin Modern
Math, STIX Two Math, XITS Math); it is located by file path or by
system font name.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/npillmayer/mex/backend/gfx"
	"github.com/npillmayer/mex/core"
	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/core/font/otmath"
	"github.com/npillmayer/mex/engine/mathlayout"
	"github.com/npillmayer/mex/input/mathtex"
)

// tracer traces with key 'mex.cli'.
func tracer() tracing.Trace {
	return tracing.Select("mex.cli")
}

func main() {
	var (
		fontname string
		size     float64
		out      string
		dump     bool
		textmode bool
		tlevel   string
	)

	rootCmd := &cobra.Command{
		Use:   "mex [flags] formula",
		Short: "Typeset a math formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupTracing(tlevel)
			return run(args[0], fontname, size, out, dump, textmode)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&fontname, "font", "", "math font (file path or system font name)")
	rootCmd.Flags().Float64Var(&size, "size", 12, "font size in points")
	rootCmd.Flags().StringVar(&out, "out", "formula.svg", "output file (.svg or .png)")
	rootCmd.Flags().BoolVar(&dump, "dump", false, "dump the parse tree instead of rendering")
	rootCmd.Flags().BoolVar(&textmode, "inline", false, "typeset in text style instead of display style")
	rootCmd.Flags().StringVar(&tlevel, "trace", "Error", "trace level [Debug|Info|Error]")

	if err := rootCmd.Execute(); err != nil {
		core.UserError(err)
		os.Exit(1)
	}
}

// setupTracing wires the schuko tracing machinery to Go standard
// logging.
func setupTracing(level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.mex.cli":    level,
		"trace.mex.parse":  level,
		"trace.mex.layout": level,
		"trace.mex.fonts":  level,
		"trace.mex.render": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintln(os.Stderr, "error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func run(input, fontname string, size float64, out string, dump, textmode bool) error {
	parsed, err := mathtex.Parse(input)
	if err != nil {
		return mathtex.AsCoreError(err)
	}
	if dump {
		lit := litter.Options{HidePrivateFields: true}
		fmt.Println(lit.Sdump(parsed))
		return nil
	}

	mf, err := loadFont(fontname)
	if err != nil {
		return err
	}
	ctx, err := font.NewContext(mf)
	if err != nil {
		return err
	}

	style := mathlayout.Display
	if textmode {
		style = mathlayout.Text
	}
	set := mathlayout.NewSettings(ctx, dimen.Dimen(size*float64(dimen.PT)), style)
	layout, err := mathlayout.Layout(parsed, set)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create output file %s", out)
	}
	defer f.Close()
	switch {
	case strings.HasSuffix(out, ".png"):
		img, err := gfx.RenderImage(layout, mf.SFNT(), 4.0)
		if err != nil {
			return err
		}
		return png.Encode(f, img)
	default:
		return gfx.RenderSVG(layout, mf.SFNT(), f)
	}
}

// loadFont reads and parses the math font, locating it as a system
// font if the name is not a readable path.
func loadFont(fontname string) (*otmath.Font, error) {
	if fontname == "" {
		return nil, core.Error(core.EMISSING, "no math font given; use --font")
	}
	path := fontname
	if _, err := os.Stat(path); err != nil {
		fpath, err2 := findfont.Find(fontname)
		if err2 != nil {
			return nil, core.WrapError(err2, core.EMISSING, "font %s not found", fontname)
		}
		path = fpath
	}
	tracer().Infof("loading math font %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font %s", path)
	}
	mf, err := otmath.Parse(data)
	if err != nil {
		return nil, err
	}
	if !mf.HasMath() {
		return nil, core.Error(core.EINVALID, "font %s has no MATH table", fontname)
	}
	return mf, nil
}
