// boothframe - Photo-booth collage compositing.
//
// Usage:
//
//	boothframe render -layout <id> [options] <image>...
//	boothframe preview -layout <id> [options] [image]...
//	boothframe layouts
//	boothframe frames
//	boothframe serve [-listen :3002] [-storage memory]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xob0t/boothframe/clients/server"
	"github.com/xob0t/boothframe/pkg/compositor"
	"github.com/xob0t/boothframe/pkg/config"
	"github.com/xob0t/boothframe/pkg/frame"
	"github.com/xob0t/boothframe/pkg/generator"
	"github.com/xob0t/boothframe/pkg/layout"
	"github.com/xob0t/boothframe/pkg/preview"
	"github.com/xob0t/boothframe/pkg/source"
	"github.com/xob0t/boothframe/pkg/store/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "layouts":
		err = runLayouts()
	case "frames":
		err = runFrames()
	case "serve":
		err = runServe(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		printUsage()
		err = fmt.Errorf("unknown command %q", os.Args[1])
	}
	if err != nil {
		fatal(err)
	}
}

// collageFlags are shared by render and preview.
type collageFlags struct {
	cfg    config.Config
	req    compositor.Request
	output string
}

func parseCollageFlags(name string, args []string) (*collageFlags, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cf := &collageFlags{cfg: config.Load()}
	cf.cfg.RegisterRenderFlags(fs)
	fs.StringVar(&cf.req.LayoutID, "layout", "", "Layout id (A-L)")
	fs.StringVar(&cf.req.FrameID, "frame", "", "Frame id (see 'boothframe frames')")
	fs.StringVar(&cf.req.Filter, "filter", "", "Filter: none, grayscale, sepia, vintage, cool")
	fs.StringVar(&cf.req.BorderColor, "border", "#ffffff", "Border color (hex)")
	fs.StringVar(&cf.output, "o", "", "Output file path")
	fs.StringVar(&cf.output, "output", "", "Output file path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cf.req.LayoutID == "" {
		return nil, fmt.Errorf("-layout is required")
	}
	cf.req.Images = fs.Args()
	if err := config.SetupLogging(cf.cfg.LogLevel); err != nil {
		return nil, err
	}
	return cf, nil
}

// loader opens the configured asset store so asset:<id> handles resolve
// from the command line too.
func (cf *collageFlags) loader(ctx context.Context) (*source.Loader, error) {
	assets, err := storage.GetStore(ctx, cf.cfg)
	if err != nil {
		return nil, err
	}
	return &source.Loader{
		Assets:     assets,
		AllowFiles: true,
		Workers:    cf.cfg.DecodeWorkers,
		Log:        logrus.StandardLogger(),
	}, nil
}

func runRender(args []string) error {
	cf, err := parseCollageFlags("render", args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	loader, err := cf.loader(ctx)
	if err != nil {
		return err
	}

	engine, err := compositor.New(compositor.Options{
		Caption:  cf.cfg.Caption,
		FontPath: cf.cfg.FontPath,
		Loader:   loader,
	})
	if err != nil {
		return err
	}

	img, err := engine.Compose(ctx, cf.req)
	if err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("nothing to render: check the layout id and image paths")
	}

	output := cf.output
	if output == "" {
		output = generator.Filename(time.Now(), generator.JPEG)
	}
	if err := generator.Generate(output, img, generator.Config{}); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", output)
	return nil
}

func runPreview(args []string) error {
	cf, err := parseCollageFlags("preview", args)
	if err != nil {
		return err
	}
	ctx := context.Background()

	var loader compositor.ImageLoader
	if len(cf.req.Images) > 0 {
		l, err := cf.loader(ctx)
		if err != nil {
			return err
		}
		loader = l
	}
	r, err := preview.NewRenderer(loader, cf.cfg.Caption, logrus.StandardLogger())
	if err != nil {
		return err
	}

	output := cf.output
	if output == "" {
		output = "preview.svg"
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := r.Render(ctx, f, cf.req); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", output)
	return nil
}

func runLayouts() error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSIZE\tIMAGES\tORIENTATION")
	for _, l := range layout.All() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", l.ID, l.Size, l.ImageCount, l.Orientation)
	}
	return tw.Flush()
}

func runFrames() error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tBORDER")
	for _, f := range frame.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", f.ID, f.Name, frame.KindOf(&f), f.EffectiveBorderWidth())
	}
	return tw.Flush()
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg := config.Load()
	cfg.RegisterServerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := config.SetupLogging(cfg.LogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, cfg)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(strings.TrimLeft(`
boothframe - Photo-booth collage compositing

USAGE:
    boothframe render -layout <id> [options] <image>...
    boothframe preview -layout <id> [options] [image]...
    boothframe layouts
    boothframe frames
    boothframe serve [-listen :3002] [-storage memory]

RENDER / PREVIEW:
    -layout <id>       Layout id, see 'boothframe layouts'
    -frame <id>        Frame id, see 'boothframe frames'
    -filter <name>     none, grayscale, sepia, vintage, cool
    -border <hex>      Border color (default: #ffffff)
    -o, -output <path> Output file (.jpg/.png for render, .svg for preview)
    -caption <text>    Footer caption (default: Photo Booth)
    -font <path>       TTF/OTF font for text (default: Go Regular)

    Images are file paths, data URIs or asset:<id> handles, one per slot
    in layout order. Pass "" to leave a slot empty.

SERVE:
    -listen <addr>     Listen address (default: :3002)
    -storage <type>    memory, filesystem, sqlite, s3

EXAMPLES:
    boothframe render -layout E -frame classic-black -o party.jpg a.jpg b.jpg c.jpg d.jpg
    boothframe preview -layout G -filter sepia -o layout.svg
    boothframe serve -storage sqlite
`, "\n"))
}
