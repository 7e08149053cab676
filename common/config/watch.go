package config

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

type ReloadFn func(previous *GalleryConfig, current *GalleryConfig)

var reloadFns = make([]ReloadFn, 0)
var reloadLock = &sync.Mutex{}

func OnReload(fn ReloadFn) {
	reloadLock.Lock()
	reloadFns = append(reloadFns, fn)
	reloadLock.Unlock()
}

func Watch() *fsnotify.Watcher {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logrus.Fatal(err)
	}

	err = watcher.Add(Path)
	if err != nil {
		logrus.Fatal(err)
	}

	go func() {
		debounced := debounce.New(1 * time.Second)
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				debounced(onFileChanged)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.Error("error in config watcher:", err)
			}
		}
	}()

	return watcher
}

func onFileChanged() {
	logrus.Info("Config file change detected - reloading")
	configNow := Get()
	configNew, err := LoadFrom(Path)
	if err != nil {
		logrus.Error("Error reloading configuration - ignoring")
		logrus.Error(err)
		return
	}

	logrus.Info("Applying reloaded config live")
	set(configNew)
	applyReload(configNow, configNew)
}

func applyReload(configNow *GalleryConfig, configNew *GalleryConfig) {
	if configNew.Index != configNow.Index {
		logrus.Warn("Index configuration changed - the image list is a snapshot, restart the gallery to apply changes")
	}
	if configNew.General.LogDirectory != configNow.General.LogDirectory {
		logrus.Warn("Log configuration changed - restart the gallery to apply changes")
	}
	if configNew.Thumbnails.MemoryBudgetBytes != configNow.Thumbnails.MemoryBudgetBytes {
		logrus.Warn("Thumbnail memory budget changed - cache capacity is fixed at startup, restart the gallery to apply changes")
	}

	if (configNew.Thumbnails.FailureCacheMinutes > 0) != (configNow.Thumbnails.FailureCacheMinutes > 0) {
		logrus.Warn("Decode failure cache enabled or disabled - restart the gallery to apply changes")
	}

	reloadLock.Lock()
	fns := make([]ReloadFn, len(reloadFns))
	copy(fns, reloadFns)
	reloadLock.Unlock()

	for _, fn := range fns {
		fn(configNow, configNew)
	}
}
