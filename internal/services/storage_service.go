// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/config"
)

// Document categories accepted by the upload endpoint. Each one maps to a
// document column on the license.
const (
	DocumentPassportPhotos   = "passport_photos"
	DocumentCompanyProfile   = "company_profile"
	DocumentReceiptOfPayment = "receipt_of_payment"
	DocumentEnvironmental    = "environmental_assessment_plan"
	DocumentExperience       = "experience_profile"
	DocumentRiskManagement   = "risk_management_plan"
	DocumentBankStatement    = "bank_statement"
)

type StorageService struct {
	s3Client s3iface.S3API
	config   *config.Config
	now      func() time.Time
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	Category string `json:"category"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
}

var (
	imageTypes    = []string{".jpg", ".jpeg", ".png"}
	documentTypes = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}
)

var uploadOptions = map[string]UploadOptions{
	DocumentPassportPhotos:   {Folder: "passport-photos", MaxSize: 5 << 20, AllowedTypes: imageTypes},
	DocumentCompanyProfile:   {Folder: "company-profiles", MaxSize: 10 << 20, AllowedTypes: documentTypes},
	DocumentReceiptOfPayment: {Folder: "receipts", MaxSize: 5 << 20, AllowedTypes: documentTypes},
	DocumentEnvironmental:    {Folder: "environmental-plans", MaxSize: 20 << 20, AllowedTypes: documentTypes},
	DocumentExperience:       {Folder: "experience-profiles", MaxSize: 10 << 20, AllowedTypes: documentTypes},
	DocumentRiskManagement:   {Folder: "risk-plans", MaxSize: 20 << 20, AllowedTypes: documentTypes},
	DocumentBankStatement:    {Folder: "bank-statements", MaxSize: 10 << 20, AllowedTypes: documentTypes},
}

func DocumentCategories() []string {
	return []string{
		DocumentPassportPhotos,
		DocumentCompanyProfile,
		DocumentReceiptOfPayment,
		DocumentEnvironmental,
		DocumentExperience,
		DocumentRiskManagement,
		DocumentBankStatement,
	}
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Files go to the local upload directory.
		return &StorageService{config: cfg, now: time.Now}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewStorageServiceWithClient(s3.New(sess), cfg), nil
}

func NewStorageServiceWithClient(client s3iface.S3API, cfg *config.Config) *StorageService {
	return &StorageService{s3Client: client, config: cfg, now: time.Now}
}

func (s *StorageService) GetUploadOptions(category string) (UploadOptions, error) {
	opts, ok := uploadOptions[category]
	if !ok {
		return UploadOptions{}, ErrUnknownCategory
	}
	return opts, nil
}

// UploadDocument stores a license document and returns the URL that goes
// into the matching license field.
func (s *StorageService) UploadDocument(ctx context.Context, category, filename string, size int64, body io.Reader) (*UploadResult, error) {
	options, err := s.GetUploadOptions(category)
	if err != nil {
		return nil, err
	}

	if options.MaxSize > 0 && size > options.MaxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !contains(options.AllowedTypes, ext) {
		return nil, ErrFileTypeNotAllowed
	}

	fileBytes, err := io.ReadAll(io.LimitReader(body, options.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(fileBytes)) > options.MaxSize {
		return nil, ErrFileTooLarge
	}

	key := s.generateFileName(ext, options.Folder)
	contentType := http.DetectContentType(fileBytes)

	var result *UploadResult
	if s.s3Client != nil {
		result, err = s.uploadToS3(ctx, fileBytes, key, contentType)
	} else {
		result, err = s.uploadToLocal(fileBytes, key, contentType)
	}
	if err != nil {
		return nil, err
	}
	result.Category = category
	return result, nil
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	target := filepath.Join(s.config.App.UploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(target, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	logrus.WithField("key", key).Debug("Stored upload on local disk")

	base := strings.TrimSuffix(strings.TrimSuffix(s.config.App.APIEndpoint, "/"), "/api")
	return &UploadResult{
		URL:      base + "/uploads/" + key,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if s.s3Client == nil {
		err := os.Remove(filepath.Join(s.config.App.UploadDir, filepath.FromSlash(key)))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

func (s *StorageService) GeneratePresignedURL(key string, expiration time.Duration) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("S3 client not configured")
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url, nil
}

func (s *StorageService) generateFileName(ext, folder string) string {
	id := uuid.New()
	timestamp := s.now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, id.String()[:8], ext)

	if folder != "" {
		return path.Join(folder, filename)
	}
	return filename
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.AWS.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
