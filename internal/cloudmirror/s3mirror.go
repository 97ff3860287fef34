package cloudmirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

// S3Mirror is the reference Mirror implementation: one JSON object per
// bet mutation, keyed by bet id and lifecycle stage, written to an
// S3-compatible bucket. Grounded on the teacher's R2 backup service's use
// of an S3-compatible client for off-box state (internal/reliability's
// R2BackupService), adapted from whole-database tarballs to per-bet
// objects since a bet is orders of magnitude smaller than a database.
type S3Mirror struct {
	client *s3.Client
	bucket string
	log    zerolog.Logger
}

// NewS3Mirror loads AWS config from the environment/region and builds an
// S3-compatible mirror. endpoint is optional; when set it points the
// client at an S3-compatible provider (e.g. Cloudflare R2) instead of AWS.
func NewS3Mirror(ctx context.Context, bucket, region, endpoint string, log zerolog.Logger) (*S3Mirror, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("cloudmirror: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = endpoint != ""
	})

	return &S3Mirror{
		client: client,
		bucket: bucket,
		log:    log.With().Str("component", "cloudmirror").Logger(),
	}, nil
}

// SyncBet mirrors a freshly placed bet's full state.
func (m *S3Mirror) SyncBet(bet domain.Bet) error {
	return m.putObject(objectKey(bet.ID, "sync"), bet)
}

// MarkBetLive mirrors a bet transitioning into the live/pending state.
func (m *S3Mirror) MarkBetLive(bet domain.Bet) error {
	return m.putObject(objectKey(bet.ID, "live"), bet)
}

// MarkBetFinished mirrors a settled bet and removes the earlier lifecycle
// objects, since the finished object is now authoritative.
func (m *S3Mirror) MarkBetFinished(bet domain.Bet) error {
	if err := m.putObject(objectKey(bet.ID, "finished"), bet); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, stage := range []string{"sync", "live"} {
		key := objectKey(bet.ID, stage)
		if _, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(m.bucket),
			Key:    aws.String(key),
		}); err != nil {
			m.log.Warn().Err(err).Str("key", key).Msg("failed to delete stale mirror object")
		}
	}
	return nil
}

func (m *S3Mirror) putObject(key string, bet domain.Bet) error {
	body, err := json.Marshal(bet)
	if err != nil {
		return fmt.Errorf("cloudmirror: marshal bet: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("cloudmirror: put object %s: %w", key, err)
	}
	return nil
}

func objectKey(betID, stage string) string {
	return fmt.Sprintf("bets/%s/%s.json", betID, stage)
}
