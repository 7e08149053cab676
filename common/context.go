package common

type GalleryContextKey string

const (
	ContextLogger    GalleryContextKey = "gallery.logger"
	ContextSessionId GalleryContextKey = "gallery.session_id"
)
