// Package statuscheck aggregates readiness checks for the /status endpoint.
package statuscheck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Checker aggregates health checks for the subsystems a request touches.
type Checker struct {
	uploadDir string
	s3Bucket  string
}

// Options configures the Checker.
type Options struct {
	UploadDir string
	S3Bucket  string
}

// Status represents the readiness of a subsystem.
type Status struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Summary bundles all subsystem statuses.
type Summary struct {
	Uploads Status `json:"uploads"`
	S3      Status `json:"s3"`
}

// New creates a new Checker with the provided options.
func New(opts Options) *Checker {
	return &Checker{
		uploadDir: opts.UploadDir,
		s3Bucket:  opts.S3Bucket,
	}
}

// Summary returns the current status snapshot.
func (c *Checker) Summary(ctx context.Context) Summary {
	return Summary{
		Uploads: c.checkUploadDir(),
		S3:      c.checkS3(ctx),
	}
}

// checkUploadDir verifies the upload directory is writable by creating and
// removing a probe file.
func (c *Checker) checkUploadDir() Status {
	if c.uploadDir == "" {
		return Status{OK: false, Message: "Directory not configured"}
	}
	probe := filepath.Join(c.uploadDir, ".probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return Status{OK: false, Message: trimError(err)}
	}
	_ = os.Remove(probe)
	return Status{OK: true, Message: "Writable"}
}

func (c *Checker) checkS3(ctx context.Context) Status {
	if c.s3Bucket == "" {
		return Status{OK: true, Message: "Disabled"}
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return Status{OK: false, Message: trimError(err)}
	}
	cli := s3.NewFromConfig(cfg)
	if _, err = cli.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &c.s3Bucket}); err != nil {
		return Status{OK: false, Message: trimError(err)}
	}
	return Status{OK: true, Message: "Connected"}
}

func trimError(err error) string {
	if err == nil {
		return ""
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	msg := err.Error()
	if len(msg) > 120 {
		return msg[:120]
	}
	return msg
}
