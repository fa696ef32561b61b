package repoeval

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/hackside/backend/s3bucket"
)

// S3ArtifactStore stores evaluation artifacts in an S3 bucket. Excerpt
// archives are zstd-compressed; reports are stored as-is.
type S3ArtifactStore struct {
	bucket *s3bucket.S3Bucket
}

func NewS3ArtifactStore(bucket *s3bucket.S3Bucket) *S3ArtifactStore {
	return &S3ArtifactStore{bucket: bucket}
}

func (s *S3ArtifactStore) SaveReport(ctx context.Context, evalID uuid.UUID, pdf []byte) (string, error) {
	key := fmt.Sprintf("evaluations/%s/report.pdf", evalID)
	_, err := s.bucket.Upload(ctx, pdf, key, "application/pdf")
	if err != nil {
		return "", fmt.Errorf("failed to store report: %w", err)
	}
	return key, nil
}

func (s *S3ArtifactStore) SaveExcerpts(ctx context.Context, evalID uuid.UUID, excerpts []Excerpt) (string, error) {
	texts := make([]string, len(excerpts))
	for i, excerpt := range excerpts {
		texts[i] = excerpt.Text
	}
	joined := []byte(strings.Join(texts, "\n\n"))

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	compressed := encoder.EncodeAll(joined, nil)
	encoder.Close()

	key := fmt.Sprintf("evaluations/%s/excerpts.txt.zst", evalID)
	_, err = s.bucket.Upload(ctx, compressed, key, "application/zstd")
	if err != nil {
		return "", fmt.Errorf("failed to store excerpt archive: %w", err)
	}
	return key, nil
}

func (s *S3ArtifactStore) GetReport(ctx context.Context, key string) ([]byte, error) {
	return s.bucket.Download(ctx, key)
}
