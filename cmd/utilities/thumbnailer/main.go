package main

import (
	"flag"
	"os"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/windy003/photo-gallery/common/config"
	"github.com/windy003/photo-gallery/common/logging"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/thumbnailing"
	"github.com/windy003/photo-gallery/thumbnailing/m"
)

func main() {
	configPath := flag.String("config", "gallery.yaml", "The path to the configuration")
	inFile := flag.String("i", "", "The input image to decode")
	outFile := flag.String("o", "", "The output file to write the decoded image to. The format is chosen from the extension, typically PNG.")
	sampleSize := flag.Int("s", 0, "The sample size to decode at. Defaults to the configured sample size.")
	full := flag.Bool("full", false, "Decode at full resolution, as the full screen view does")
	flag.Parse()

	if inFile == nil || *inFile == "" {
		panic("No input file specified")
	}
	if outFile == nil || *outFile == "" {
		panic("No output file specified")
	}

	// Override config path with config for Docker users
	configEnv := os.Getenv("GALLERY_CONFIG")
	if configEnv != "" {
		configPath = &configEnv
	}
	config.Path = *configPath

	err := logging.Setup(
		config.Get().General.LogDirectory,
		config.Get().General.LogColors,
		config.Get().General.JsonLogs,
		config.Get().General.LogLevel,
	)
	if err != nil {
		panic(err)
	}
	ctx := rcontext.Initial()

	sample := config.Get().Thumbnails.SampleSize
	if *sampleSize > 0 {
		sample = *sampleSize
	}
	ctx.Log.WithField("sampleSize", sample).WithField("full", *full).Info("Decoding options:")

	f, err := os.Open(*inFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	var b *m.Bitmap
	if *full {
		b, err = thumbnailing.DecodeFull(f, config.Get().Thumbnails.MaxPixels, ctx)
	} else {
		b, err = thumbnailing.DecodeThumbnail(f, sample, config.Get().Thumbnails.MaxPixels, ctx)
	}
	if err != nil {
		panic(err)
	}

	ctx.Log.WithField("width", b.Width).WithField("height", b.Height).WithField("resident", humanize.Bytes(uint64(b.ByteCount()))).Info("Writing decoded image")
	if err = imaging.Save(b.Image, *outFile); err != nil {
		panic(err)
	}

	ctx.Log.Info("Done!")
}
