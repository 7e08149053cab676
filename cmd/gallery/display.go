package main

import (
	"github.com/sirupsen/logrus"
	"github.com/windy003/photo-gallery/thumbnailing/m"
	"github.com/windy003/photo-gallery/types"
)

// logDisplay stands in for a screen by logging what would be drawn.
type logDisplay struct {
	log *logrus.Entry
}

func newLogDisplay() *logDisplay {
	return &logDisplay{log: logrus.WithField("component", "display")}
}

func (d *logDisplay) ShowImages(refs []types.ImageRef) {
	d.log.Infof("Grid shows %d images", len(refs))
	for i, r := range refs {
		d.log.Debugf("\t%d: %s", i, r.Location)
	}
}

func (d *logDisplay) SetGridVisible(visible bool) {
	d.log.Info("Grid visible: ", visible)
}

func (d *logDisplay) SetFullScreenVisible(visible bool) {
	d.log.Info("Full screen visible: ", visible)
}

func (d *logDisplay) SetFullScreenImage(b *m.Bitmap) {
	if b == nil {
		d.log.Info("Full screen cleared")
		return
	}
	d.log.Infof("Full screen shows %dx%d image", b.Width, b.Height)
}

func (d *logDisplay) Notify(message string) {
	d.log.Warn(message)
}

type logSurface struct {
	position int
}

func (s *logSurface) SetImage(b *m.Bitmap) {
	logrus.WithField("cell", s.position).Infof("Thumbnail %dx%d", b.Width, b.Height)
}

func (s *logSurface) Clear() {
	logrus.WithField("cell", s.position).Debug("Cleared")
}
