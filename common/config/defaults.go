package config

func NewDefaultConfig() GalleryConfig {
	return GalleryConfig{
		General: GeneralConfig{
			LogDirectory: "logs",
			LogColors:    false,
			JsonLogs:     false,
			LogLevel:     "info",
		},
		Index: IndexConfig{
			Type:      "fs",
			Path:      "./photos",
			Recursive: true,
			Driver:    "sqlite3",
			Dsn:       "",
		},
		Resolvers: ResolversConfig{
			S3: []S3ResolverConfig{},
		},
		Thumbnails: ThumbnailsConfig{
			NumWorkers:          4,
			SampleSize:          4,
			MemoryBudgetBytes:   0,
			MaxPixels:           100000000, // 100M
			FailureCacheMinutes: 15,
		},
		Permissions: PermissionsConfig{
			Mode: "prompt",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			BindAddress: "localhost",
			Port:        9000,
		},
		Sentry: SentryConfig{
			Enabled:     false,
			Dsn:         "not supplied",
			Environment: "",
			Debug:       false,
		},
	}
}
