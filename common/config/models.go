package config

type GeneralConfig struct {
	LogDirectory string `yaml:"logDirectory"`
	LogColors    bool   `yaml:"logColors"`
	JsonLogs     bool   `yaml:"jsonLogs"`
	LogLevel     string `yaml:"logLevel"`
}

type IndexConfig struct {
	Type      string `yaml:"type"` // "fs" or "sql"
	Path      string `yaml:"path"`
	Recursive bool   `yaml:"recursive"`
	Driver    string `yaml:"driver"` // "postgres", "sqlite3", or "mysql"
	Dsn       string `yaml:"dsn"`
}

type S3ResolverConfig struct {
	Bucket       string `yaml:"bucketName"`
	Endpoint     string `yaml:"endpoint"`
	AccessKeyId  string `yaml:"accessKeyId"`
	AccessSecret string `yaml:"accessSecret"`
	Region       string `yaml:"region"`
	Ssl          bool   `yaml:"ssl"`
}

type ResolversConfig struct {
	S3 []S3ResolverConfig `yaml:"s3,flow"`
}

type ThumbnailsConfig struct {
	NumWorkers          int   `yaml:"numWorkers"`
	SampleSize          int   `yaml:"sampleSize"`
	MemoryBudgetBytes   int64 `yaml:"memoryBudgetBytes"` // 0 to derive from the runtime
	MaxPixels           int   `yaml:"maxPixels"`
	FailureCacheMinutes int   `yaml:"failureCacheMinutes"`
}

type PermissionsConfig struct {
	Mode string `yaml:"mode"` // "prompt", "granted", or "denied"
}

type MetricsConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bindAddress"`
	Port        int    `yaml:"port"`
}

type SentryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Dsn         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

type GalleryConfig struct {
	General     GeneralConfig     `yaml:"general"`
	Index       IndexConfig       `yaml:"index"`
	Resolvers   ResolversConfig   `yaml:"resolvers"`
	Thumbnails  ThumbnailsConfig  `yaml:"thumbnails"`
	Permissions PermissionsConfig `yaml:"permissions"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Sentry      SentryConfig      `yaml:"sentry"`
}
