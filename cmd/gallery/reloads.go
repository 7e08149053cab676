package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/windy003/photo-gallery/common/config"
	"github.com/windy003/photo-gallery/common/logging"
	"github.com/windy003/photo-gallery/metrics"
)

func setupReloads(s *session) {
	config.OnReload(func(previous *config.GalleryConfig, current *config.GalleryConfig) {
		if current.Thumbnails.NumWorkers != previous.Thumbnails.NumWorkers {
			s.queue.Tune(current.Thumbnails.NumWorkers)
		}
		// Turning the cache on or off needs a restart; only the expiry can change live
		if current.Thumbnails.FailureCacheMinutes > 0 && previous.Thumbnails.FailureCacheMinutes > 0 &&
			current.Thumbnails.FailureCacheMinutes != previous.Thumbnails.FailureCacheMinutes {
			s.failures.Resize(time.Duration(current.Thumbnails.FailureCacheMinutes) * time.Minute)
		}
		if current.General.LogLevel != previous.General.LogLevel {
			if err := logging.SetLevel(current.General.LogLevel); err != nil {
				logrus.Error("Error applying log level: ", err)
			}
		}
		if current.Metrics != previous.Metrics {
			logrus.Info("Reloading metrics listener")
			metrics.Reload()
		}
	})
}
