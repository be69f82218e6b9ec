package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options parámetros del bucket de archivo. Endpoint y PathStyle permiten MinIO.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// S3Archiver guarda los archivos en un bucket S3 compatible.
type S3Archiver struct {
	client *s3.Client
	bucket string
}

// NewS3Archiver carga credenciales por la cadena estándar de AWS (env, perfil, rol).
func NewS3Archiver(ctx context.Context, opts S3Options) (*S3Archiver, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket S3 requerido")
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("storage: configuración AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = opts.PathStyle
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})
	return &S3Archiver{client: client, bucket: opts.Bucket}, nil
}

// Archive sube data a s3://bucket/key. Consulta HeadObject antes para no sobrescribir.
func (a *S3Archiver) Archive(ctx context.Context, key, contentType string, data []byte) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if _, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &a.bucket, Key: &k}); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, k)
	}
	in := &s3.PutObjectInput{
		Bucket:        &a.bucket,
		Key:           &k,
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := a.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", k, err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, k), nil
}
