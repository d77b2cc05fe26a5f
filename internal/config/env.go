package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sofiandread/detect-art-format/internal/classify"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AxiomConfig holds Axiom log forwarding configuration.
type AxiomConfig struct {
	Send          bool
	APIKey        string
	OrgID         string
	Dataset       string
	FlushInterval time.Duration
}

// ServerConfig defines the HTTP surface and upload handling.
type ServerConfig struct {
	Port            string
	UploadDir       string
	MaxUploadMB     int
	CleanupMaxAge   time.Duration
	CleanupInterval time.Duration
	ShutdownTimeout time.Duration
}

// RenderConfig controls design image extraction.
type RenderConfig struct {
	DPI float64
}

// StorageConfig defines optional S3 connectivity for source fetches and
// archived exports. An empty bucket disables S3 entirely.
type StorageConfig struct {
	Bucket    string
	KeyPrefix string
}

// Config is the top-level configuration.
type Config struct {
	Logging LoggingConfig
	Axiom   AxiomConfig
	Server  ServerConfig
	Render  RenderConfig
	Storage StorageConfig
	Detect  classify.Thresholds
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
	cfg := Config{}

	// Logging defaults
	cfg.Logging = LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
		File:       getEnv("LOG_FILE", "logs/artformat.log"),
		MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
		MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
		MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
		Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
	}

	// Axiom defaults
	baseDataset := getEnv("AXIOM_DATASET", "dev")
	cfg.Axiom = AxiomConfig{
		Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
		APIKey:        getEnv("AXIOM_API_KEY", ""),
		OrgID:         getEnv("AXIOM_ORG_ID", ""),
		Dataset:       baseDataset + "_artformat",
		FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
	}

	// Server defaults
	cfg.Server = ServerConfig{
		Port:            getEnv("PORT", "8080"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:     parseInt(getEnv("MAX_UPLOAD_MB", "64"), 64),
		CleanupMaxAge:   parseDuration(getEnv("UPLOAD_MAX_AGE", "1h"), time.Hour),
		CleanupInterval: parseDuration(getEnv("UPLOAD_CLEANUP_INTERVAL", "10m"), 10*time.Minute),
		ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
	}

	cfg.Render = RenderConfig{
		DPI: parseFloat(getEnv("RENDER_DPI", "300"), 300),
	}

	cfg.Storage = StorageConfig{
		Bucket:    getEnv("AWS_S3_BUCKET", ""),
		KeyPrefix: getEnv("S3_KEY_PREFIX", "design-exports/"),
	}

	cfg.Detect = detectFromEnv(classify.DefaultThresholds())

	return cfg
}

// detectFromEnv overlays DETECT_* environment overrides on the built-in
// classification thresholds.
func detectFromEnv(th classify.Thresholds) classify.Thresholds {
	th.HairlineWidth = parseFloat(os.Getenv("DETECT_HAIRLINE_WIDTH"), th.HairlineWidth)
	th.PanelAreaFraction = parseFloat(os.Getenv("DETECT_PANEL_AREA_FRACTION"), th.PanelAreaFraction)
	th.PanelMaxItems = parseInt(os.Getenv("DETECT_PANEL_MAX_ITEMS"), th.PanelMaxItems)
	th.PanelWeight = parseFloat(os.Getenv("DETECT_PANEL_WEIGHT"), th.PanelWeight)
	th.RectWeight = parseFloat(os.Getenv("DETECT_RECT_WEIGHT"), th.RectWeight)
	th.ShapeWeight = parseFloat(os.Getenv("DETECT_SHAPE_WEIGHT"), th.ShapeWeight)
	th.DrawingWeight = parseFloat(os.Getenv("DETECT_DRAWING_WEIGHT"), th.DrawingWeight)
	th.TinyIntersectFraction = parseFloat(os.Getenv("DETECT_TINY_INTERSECT_FRACTION"), th.TinyIntersectFraction)
	th.SegmentPanelMinItems = parseInt(os.Getenv("DETECT_SEGMENT_PANEL_MIN_ITEMS"), th.SegmentPanelMinItems)
	th.NoRasterMax = parseFloat(os.Getenv("DETECT_NO_RASTER_MAX"), th.NoRasterMax)
	th.MinVectorSignal = parseFloat(os.Getenv("DETECT_MIN_VECTOR_SIGNAL"), th.MinVectorSignal)
	th.MinTextSignal = parseFloat(os.Getenv("DETECT_MIN_TEXT_SIGNAL"), th.MinTextSignal)
	th.MinSegmentsWeak = parseInt(os.Getenv("DETECT_MIN_SEGMENTS_WEAK"), th.MinSegmentsWeak)
	th.RasterMargin = parseFloat(os.Getenv("DETECT_RASTER_MARGIN"), th.RasterMargin)
	th.VectorMargin = parseFloat(os.Getenv("DETECT_VECTOR_MARGIN"), th.VectorMargin)
	th.RasterDominantMin = parseFloat(os.Getenv("DETECT_RASTER_DOMINANT_MIN"), th.RasterDominantMin)
	th.VectorCloseMax = parseFloat(os.Getenv("DETECT_VECTOR_CLOSE_MAX"), th.VectorCloseMax)
	th.PureVectorMax = parseFloat(os.Getenv("DETECT_PURE_VECTOR_MAX"), th.PureVectorMax)
	th.MinSegmentsStrong = parseInt(os.Getenv("DETECT_MIN_SEGMENTS_STRONG"), th.MinSegmentsStrong)
	th.LowDetailSegments = parseInt(os.Getenv("DETECT_LOW_DETAIL_SEGMENTS"), th.LowDetailSegments)
	th.LowDetailDPIFloor = parseFloat(os.Getenv("DETECT_LOW_DETAIL_DPI_FLOOR"), th.LowDetailDPIFloor)
	th.LowDetailRasterMin = parseFloat(os.Getenv("DETECT_LOW_DETAIL_RASTER_MIN"), th.LowDetailRasterMin)
	return th
}

// Helpers
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func devDefaultPretty() string {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if env == "dev" || env == "development" || env == "local" {
		return "true"
	}
	return "false"
}
