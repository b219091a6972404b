package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"cypress_backend/pkg/config"
)

var (
	LogoBucket   = "workspace-logos"
	AvatarBucket = "avatars"
	BannerBucket = "file-banners"
)

var storageCfg config.StorageConfig

// Init R2 erişim bilgilerini ve bucket adlarını uygulama config'inden alır.
func Init(c config.StorageConfig) {
	storageCfg = c
	if c.LogoBucket != "" {
		LogoBucket = c.LogoBucket
	}
	if c.AvatarBucket != "" {
		AvatarBucket = c.AvatarBucket
	}
	if c.BannerBucket != "" {
		BannerBucket = c.BannerBucket
	}
}

func getS3Client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			storageCfg.AccessKey,
			storageCfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", storageCfg.AccountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return client, nil
}

// NewObjectKey "workspaceLogo.<uuid>" gibi benzersiz bir key üretir.
// Prefix URL-safe hale getirilir.
func NewObjectKey(prefix string) string {
	return fmt.Sprintf("%s.%s", slug.Make(prefix), uuid.New().String())
}

// Upload dosyayı verilen bucket'a verilen key ile yükler ve storage path'i
// döner.
func Upload(bucket, key string, file *multipart.FileHeader) (string, error) {
	client, err := getS3Client()
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("could not open file: %v", err)
	}
	defer src.Close()

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(file.Header.Get("Content-Type")),
	}

	_, err = client.PutObject(context.TODO(), input)
	if err != nil {
		return "", fmt.Errorf("could not upload file: %v", err)
	}

	return key, nil
}

// PublicURL bucket içindeki bir path için CDN adresini döner.
func PublicURL(bucket, path string) string {
	cdnBase := storageCfg.CDNBaseURL
	if cdnBase == "" {
		cdnBase = "https://cdn.cypress.app"
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(cdnBase, "/"), bucket, path)
}

// Delete bir objeyi path veya public URL ile siler.
func Delete(bucket, pathOrURL string) error {
	objectKey := pathOrURL
	if strings.Contains(pathOrURL, "://") {
		// URL'den key'i çıkar
		parts := strings.SplitN(pathOrURL, "/"+bucket+"/", 2)
		if len(parts) == 2 {
			objectKey = parts[1]
		}
	}

	client, err := getS3Client()
	if err != nil {
		return err
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	}

	_, err = client.DeleteObject(context.TODO(), input)
	if err != nil {
		return fmt.Errorf("could not delete file: %v", err)
	}

	return nil
}
