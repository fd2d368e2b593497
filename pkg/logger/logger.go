package logger

import (
	"context"
	"fmt"
	"highscores/pkg/config"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// Logger writes leveled lines to an output stream and keeps a copy on a temporary
// file, so the lines of an invocation can be shipped to a bucket afterwards.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	logFile  *os.File
	filePath string
	bucket   config.BucketConfiguration
}

// Create the log instance with a temporary file.
func CreateLogger(out io.Writer, bucket config.BucketConfiguration) (*Logger, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, err
	}

	return &Logger{
		out:      out,
		logFile:  f,
		filePath: f.Name(),
		bucket:   bucket,
	}, nil
}

// Log a simple info.
func (l *Logger) Infof(format string, args ...any) {
	l.write("[INFO]", format, args...)
}

// Log a error.
func (l *Logger) Errorf(format string, args ...any) {
	l.write("[ERROR]", format, args...)
}

// Write something to the logger.
func (l *Logger) write(infoType string, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%-8s %s %s\n", infoType, timestamp, fmt.Sprintf(format, args...))

	io.WriteString(l.out, line)
	l.logFile.WriteString(line)
}

// Contents returns what was logged since the last clean.
func (l *Logger) Contents() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read the log file: %w", err)
	}
	return string(data), nil
}

// Clean the file contents.
func (l *Logger) CleanFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cleanFile()
}

func (l *Logger) cleanFile() {
	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)
}

// Close removes the temporary file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.Close()
	return os.Remove(l.filePath)
}

// ObjectKey builds a unique key for an invocation log.
func ObjectKey(now time.Time) string {
	return fmt.Sprintf("logs/leaderboard/%s/%s.log", now.UTC().Format("2006-01-02"), uuid.NewString())
}

// Flush ships the current log to the bucket when one is configured, otherwise it
// only drops the local copy.
func (l *Logger) Flush(ctx context.Context) error {
	if !l.bucket.Enabled() {
		l.CleanFile()
		return nil
	}

	return l.UploadToS3Bucket(ctx, ObjectKey(time.Now()))
}

// Upload the log to a s3 bucket.
func (l *Logger) UploadToS3Bucket(ctx context.Context, objectKey string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	// Get the config.
	cfg := aws.Config{
		Region: l.bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				l.bucket.AccessKey,
				l.bucket.AccessSecret,
				"",
			),
		),
	}

	// Create the client.
	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if l.bucket.Endpoint != "" {
			o.BaseEndpoint = aws.String(l.bucket.Endpoint)
		}
	})

	// Run the put.
	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(l.bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	// Clean the file after sending.
	l.cleanFile()

	return nil
}
