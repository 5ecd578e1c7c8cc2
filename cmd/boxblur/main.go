// Command boxblur applies a separable box blur to an image file.
//
// The input is decoded (PNG, JPEG, GIF, BMP, TIFF or WebP), mapped to
// a planar frame, blurred per component and written back out as PNG or
// JPEG depending on the output extension.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/opd-ai/boxblur"
	"github.com/opd-ai/boxblur/video"
)

func main() {
	opts := boxblur.NewOptions()

	inPath := flag.String("in", "", "input image path (PNG/JPEG/GIF/BMP/TIFF/WebP)")
	outPath := flag.String("out", "out.png", "output image path (.png or .jpg)")
	verbose := flag.Bool("v", false, "enable debug logging")

	flag.StringVar(&opts.LumaRadius, "luma_radius", opts.LumaRadius, "luma blur radius expression")
	flag.StringVar(&opts.LumaRadius, "lr", opts.LumaRadius, "shorthand for -luma_radius")
	flag.IntVar(&opts.LumaPower, "luma_power", opts.LumaPower, "how many times the blur is applied to luma")
	flag.IntVar(&opts.LumaPower, "lp", opts.LumaPower, "shorthand for -luma_power")
	flag.StringVar(&opts.ChromaRadius, "chroma_radius", opts.ChromaRadius, "chroma blur radius expression (default: luma radius)")
	flag.StringVar(&opts.ChromaRadius, "cr", opts.ChromaRadius, "shorthand for -chroma_radius")
	flag.IntVar(&opts.ChromaPower, "chroma_power", opts.ChromaPower, "how many times the blur is applied to chroma (-1: luma power)")
	flag.IntVar(&opts.ChromaPower, "cp", opts.ChromaPower, "shorthand for -chroma_power")
	flag.StringVar(&opts.AlphaRadius, "alpha_radius", opts.AlphaRadius, "alpha blur radius expression (default: luma radius)")
	flag.StringVar(&opts.AlphaRadius, "ar", opts.AlphaRadius, "shorthand for -alpha_radius")
	flag.IntVar(&opts.AlphaPower, "alpha_power", opts.AlphaPower, "how many times the blur is applied to alpha (-1: luma power)")
	flag.IntVar(&opts.AlphaPower, "ap", opts.AlphaPower, "shorthand for -alpha_power")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "boxblur: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts, *inPath, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "boxblur: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *boxblur.Options, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}

	frame, err := video.FrameFromImage(img)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function": "run",
		"input":    inPath,
		"decoded":  format,
		"format":   frame.Format.String(),
		"width":    frame.Width,
		"height":   frame.Height,
	}).Debug("Decoded input image")

	filter, err := boxblur.New(opts)
	if err != nil {
		return err
	}
	if err := filter.Configure(frame.Format, frame.Width, frame.Height); err != nil {
		return err
	}

	blurred, err := filter.Apply(frame)
	if err != nil {
		return err
	}

	outImg, err := blurred.ToImage()
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(out, outImg, &jpeg.Options{Quality: 90})
	default:
		return png.Encode(out, outImg)
	}
}
