package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Enabled      bool   `envconfig:"ENABLED" default:"false"`
	Host         string `envconfig:"HOST" default:"localhost:9000"`
	AccessKey    string `envconfig:"ACCESS_KEY"`
	SecretKey    string `envconfig:"SECRET_KEY"`
	Region       string `envconfig:"REGION"`
	Bucket       string `envconfig:"BUCKET" default:"astro-charts"`
	UseSSL       bool   `envconfig:"USE_SSL" default:"false"`
	CreateBucket bool   `envconfig:"CREATE_BUCKET" default:"true"`
}

// NewClient создаёт MinIO клиент и проверяет bucket, при CreateBucket создаёт его
func (c *Config) NewClient(ctx context.Context) (*minio.Client, error) {
	if c.AccessKey == "" || c.SecretKey == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}

	client, err := minio.New(c.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
		Region: c.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, c.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return client, nil
	}

	if !c.CreateBucket {
		return nil, fmt.Errorf("bucket %s does not exist", c.Bucket)
	}
	if err := client.MakeBucket(checkCtx, c.Bucket, minio.MakeBucketOptions{Region: c.Region}); err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", c.Bucket, err)
	}
	return client, nil
}
