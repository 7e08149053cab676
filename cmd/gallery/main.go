package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/windy003/photo-gallery/common"
	"github.com/windy003/photo-gallery/common/config"
	"github.com/windy003/photo-gallery/common/logging"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/common/version"
	"github.com/windy003/photo-gallery/metrics"
	"github.com/windy003/photo-gallery/ui"
)

func main() {
	configPath := flag.String("config", "gallery.yaml", "The path to the configuration")
	gridSize := flag.Int("grid", 12, "How many grid cells are visible at once")
	openPosition := flag.Int("open", -1, "Open the image at this position full screen after the grid loads")
	hold := flag.Bool("hold", false, "Keep running after the session until interrupted (useful with metrics enabled)")
	versionFlag := flag.Bool("version", false, "Prints the version and exits")
	flag.Parse()

	if *versionFlag {
		version.Print(false)
		return // exit 0
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Println("Error loading .env file: ", err)
	}

	// Override config path with config for Docker users
	configEnv := os.Getenv("GALLERY_CONFIG")
	if configEnv != "" {
		configPath = &configEnv
	}

	config.Path = *configPath
	if config.Get().Sentry.Enabled {
		logrus.Info("Setting up Sentry for debugging...")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.Get().Sentry.Dsn,
			Environment: config.Get().Sentry.Environment,
			Debug:       config.Get().Sentry.Debug,
			Release:     fmt.Sprintf("%s-%s", version.Version, version.GitCommit),
		})
		if err != nil {
			panic(err)
		}
	}
	defer sentry.Flush(2 * time.Second)
	defer sentry.Recover()

	err := logging.Setup(
		config.Get().General.LogDirectory,
		config.Get().General.LogColors,
		config.Get().General.JsonLogs,
		config.Get().General.LogLevel,
	)
	if err != nil {
		panic(err)
	}

	version.Print(true)
	logrus.Info("Starting up...")

	loopCtx, stopLoop := context.WithCancel(context.Background())
	loop := ui.NewLoop()
	go loop.Run(loopCtx)

	s, err := newSession(config.Get(), loop)
	if err != nil {
		sentry.CaptureException(err)
		logrus.Fatal(err)
	}

	logrus.Info("Starting config watcher...")
	watcher := config.Watch()
	defer func(watcher *fsnotify.Watcher) {
		_ = watcher.Close()
	}(watcher)
	setupReloads(s)

	metrics.Init()

	stopAll := func() {
		logrus.Info("Stopping metrics...")
		metrics.Stop()

		logrus.Info("Stopping decode queue...")
		s.queue.Release()

		logrus.Info("Stopping UI loop...")
		stopLoop()
		<-loop.Done()
	}

	ctx := rcontext.Initial().LogWithFields(logrus.Fields{"session": s.controller.SessionId()})
	runErr := s.run(ctx, *gridSize, *openPosition)
	if runErr != nil && !errors.Is(runErr, common.ErrPermissionDenied) {
		logrus.Error("Session ended with error: ", runErr)
	}

	stats := s.provider.Cache()
	logrus.Infof("Session finished: %d images, %d thumbnails cached using %s of %s",
		s.controller.Count(), stats.Len(),
		humanize.Bytes(uint64(stats.Size()*1024)), humanize.Bytes(uint64(stats.Capacity()*1024)))

	if *hold {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		logrus.Info("Holding until interrupted...")
		<-stop
		logrus.Warn("Stop signal received")
	}

	stopAll()

	// For debugging
	logrus.Info("Goodbye!")
	if errors.Is(runErr, common.ErrPermissionDenied) {
		os.Exit(1)
	}
}
