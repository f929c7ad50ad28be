package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	mosaic "github.com/esimov/mosaic/core"
	"github.com/esimov/mosaic/utils"
	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/term"
)

const banner = `
┌┬┐┌─┐┌─┐┌─┐┬┌─┐
││││ │└─┐├─┤││
┴ ┴└─┘└─┘┴ ┴┴└─┘

Weighted voronoi mosaic generator.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

const (
	// message colors
	successColor = "\x1b[92m"
	errorColor   = "\x1b[31m"
	defaultColor = "\x1b[0m"
)

// Version indicates the current build version.
var Version string

// generator holds the settings of the command line run.
type generator struct {
	source      string
	destination string
	plot        string
	json        string
	params      mosaic.Params
}

// seedPoints is the json representation of a run, enough to reproduce it.
type seedPoints struct {
	Seed   uint64          `json:"seed"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Points []mosaic.Sample `json:"points"`
}

func main() {
	var (
		// Flags
		source      = flag.String("in", pipeName, "Source image")
		destination = flag.String("out", pipeName, "Destination image")
		points      = flag.Int("points", 100, "Number of points to generate")
		seed        = flag.Uint64("seed", 0, "Seed for the random number generator (random if omitted)")
		weight      = flag.Float64("weight", 3.5, "Color distance weight (0 disables color weighting)")
		blur        = flag.Float64("blur", 1.0, "Blur amount before processing (0 disables blurring)")
		radius      = flag.Int("radius", -1, "Mark the point locations with inverted circles of this radius (negative disables it)")
		workers     = flag.Int("workers", 0, "Number of rendering goroutines (0 uses all the CPUs)")
		plot        = flag.String("plot", "", "Save a copy of the mosaic with the points drawn over it")
		jsonf       = flag.String("json", "", "Output the seed and the generated points into a json file")
	)

	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, banner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*source) == 0 || len(*destination) == 0 {
		log.Fatal("Usage: mosaic -in input.jpg -out out.png")
	}

	var seedSet bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	if !seedSet {
		*seed = mosaic.NewSeed()
	}

	gen := &generator{
		source:      *source,
		destination: *destination,
		plot:        *plot,
		json:        *jsonf,
		params: mosaic.Params{
			Points:      *points,
			Seed:        *seed,
			ColorWeight: *weight,
			BlurAmount:  *blur,
			PointRadius: *radius,
			Workers:     *workers,
		},
	}

	if err := gen.checkDestination(); err != nil {
		log.Fatalf("%sInvalid destination: %v%s", errorColor, err, defaultColor)
	}

	start := time.Now()

	src, err := gen.decodeSource()
	if err != nil {
		log.Fatalf("%sCannot open the source image: %v%s", errorColor, err, defaultColor)
	}
	img := mosaic.ImgToPixels(src)

	log.Printf("Image dimensions: %dx%d", img.Cols, img.Rows)
	log.Printf("Seed: %d", gen.params.Seed)
	log.Printf("Points: %d", gen.params.Points)
	log.Printf("Color weight: %v", gen.params.ColorWeight)

	// Progress indicator
	ind := utils.NewProgressIndicator("Indexing pixels...", time.Millisecond*100)
	gen.params.Progress = progressReporter(ind, img.Cols*img.Rows, gen.params.Points)
	ind.Start()

	res, err := mosaic.Run(img, gen.params)
	if err != nil {
		ind.StopMsg = fmt.Sprintf("%s %sfailed ✗%s\n", ind.Message(), errorColor, defaultColor)
		ind.Stop()
		log.Fatalf("Generation error: %s%v%s", errorColor, err, defaultColor)
	}
	ind.StopMsg = fmt.Sprintf("Calculating voronoi diagram... %sfinished ✔%s\n", successColor, defaultColor)
	ind.Stop()

	out := mosaic.PixelsToImage(res.Image)
	if err := gen.save(out); err != nil {
		log.Fatalf("%sError saving the mosaic: %v%s", errorColor, err, defaultColor)
	}

	if gen.plot != "" {
		if err := plotPoints(out, res.Seeds, gen.plot); err != nil {
			log.Fatalf("%sError saving the points plot: %v%s", errorColor, err, defaultColor)
		}
	}

	if gen.json != "" {
		if err := writeJSON(gen.json, res, img); err != nil {
			log.Fatalf("%sError encoding the json file: %v%s", errorColor, err, defaultColor)
		}
	}

	if gen.destination != pipeName {
		log.Printf("Saved voronoi diagram to %s%s%s", successColor, gen.destination, defaultColor)
	}
	log.Printf("Execution time: %s%.2fs%s", successColor, time.Since(start).Seconds(), defaultColor)
}

// progressReporter forwards the library progress notifications to the spinner.
func progressReporter(ind *utils.ProgressIndicator, pixels, points int) mosaic.ProgressFunc {
	return func(stage mosaic.Stage, done, total int) {
		switch stage {
		case mosaic.StageIndexing:
			ind.Update(fmt.Sprintf("Indexing %d pixels... %d / %d rows", pixels, done, total))
		case mosaic.StageSampling:
			if done < total {
				ind.Update(fmt.Sprintf("Generating %d points...", points))
			} else {
				ind.Update(fmt.Sprintf("Generating %d points... Done", points))
			}
		case mosaic.StageRendering:
			ind.Update(fmt.Sprintf("Calculating voronoi diagram... %d / %d rows", done, total))
		}
	}
}

// checkDestination validates the output before any work is done.
func (g *generator) checkDestination() error {
	fileTypes := []string{".jpg", ".jpeg", ".png"}

	if g.json == pipeName && (g.destination == pipeName || g.plot == pipeName) {
		return fmt.Errorf("the json output and the image cannot both be written to stdout")
	}
	for _, path := range []string{g.destination, g.plot} {
		switch path {
		case "":
		case pipeName:
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("`-` should be used with a pipe for stdout")
			}
		default:
			if ext := filepath.Ext(path); !inSlice(ext, fileTypes) {
				return fmt.Errorf("output file type not supported: %v", ext)
			}
		}
	}
	return nil
}

// decodeSource reads the source image either from stdin or from a file.
func (g *generator) decodeSource() (*image.NRGBA, error) {
	if g.source == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("`-` should be used with a pipe for stdin")
		}
		return mosaic.DecodeImage(os.Stdin)
	}

	contentType, err := utils.DetectFileContentType(g.source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mosaic.ErrIO, err)
	}
	if !utils.IsImage(contentType) {
		return nil, fmt.Errorf("%w: %s is not an image (%s)", mosaic.ErrIO, g.source, contentType)
	}
	return mosaic.GetImage(g.source)
}

// save encodes the mosaic into the destination. The output file
// is created only here, once the rendering has succeeded.
func (g *generator) save(img image.Image) error {
	return saveImage(img, g.destination)
}

// saveImage encodes the image in memory first, then moves it in place
// through a temporary file, so a failure never leaves a partial output.
func saveImage(img image.Image, path string) error {
	var buf bytes.Buffer
	if path == pipeName {
		if err := mosaic.EncodeImage(&buf, img, ""); err != nil {
			return err
		}
		_, err := buf.WriteTo(os.Stdout)
		return err
	}

	if err := mosaic.EncodeImage(&buf, img, filepath.Ext(path)); err != nil {
		return err
	}
	if err := writeAtomic(path, &buf); err != nil {
		return fmt.Errorf("%w: %v", mosaic.ErrIO, err)
	}
	return nil
}

// writeAtomic writes the content of r into a temporary file next to path and renames it.
func writeAtomic(path string, r io.Reader) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// plotPoints draws every seed over the mosaic and saves the result.
func plotPoints(img image.Image, seeds []mosaic.Sample, path string) error {
	dc := gg.NewContextForImage(img)
	r := math.Max(2, float64(min(img.Bounds().Dx(), img.Bounds().Dy()))/150)

	for _, s := range seeds {
		drawSeedMarker(dc, float64(s.X)+0.5, float64(s.Y)+0.5, r, s.Color)
	}
	return saveImage(dc.Image(), path)
}

// drawSeedMarker draws a dot with the inverted seed color surrounded by a ring of the seed color.
func drawSeedMarker(ctx *gg.Context, x, y, r float64, c mosaic.RGB) {
	inv := c.Invert()

	ctx.DrawArc(x, y, r, 0, 2*math.Pi)
	ctx.SetRGB255(int(inv[0]), int(inv[1]), int(inv[2]))
	ctx.Fill()

	ctx.DrawArc(x, y, r*1.6, 0, 2*math.Pi)
	ctx.SetLineWidth(1.0)
	ctx.SetRGB255(int(c[0]), int(c[1]), int(c[2]))
	ctx.Stroke()
}

// writeJSON dumps the resolved seed and the sampled points.
func writeJSON(path string, res *mosaic.Result, img mosaic.ImageParams) error {
	var buf bytes.Buffer
	err := json.NewEncoder(&buf).Encode(seedPoints{
		Seed:   res.Seed,
		Width:  img.Cols,
		Height: img.Rows,
		Points: res.Seeds,
	})
	if err != nil {
		return err
	}

	if path == pipeName {
		_, err = buf.WriteTo(os.Stdout)
		return err
	}
	return writeAtomic(path, &buf)
}

// inSlice checks if the item exists in the slice.
func inSlice(item string, slice []string) bool {
	for _, it := range slice {
		if it == item {
			return true
		}
	}
	return false
}
