package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	sc "github.com/dmitrijs2005/supreassistant/internal/server/config"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const (
	presignExpiry         = 15 * time.Minute
	maxFileNameLength     = 255
	errAttachmentNotFound = "Attachment not found"
)

// AttachmentService manages note attachments. Metadata is stored in the
// database; clients move the bytes directly to and from object storage with
// presigned URLs.
type AttachmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewAttachmentService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *AttachmentService {
	return &AttachmentService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		now:         time.Now,
	}
}

// GetRandomStorageKey returns a fresh, date-partitioned object key.
func GetRandomStorageKey(d time.Time) string {
	return fmt.Sprintf("notes/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *AttachmentService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

func (s *AttachmentService) presignedPutURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}
	bucket := s.config.S3Bucket
	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *AttachmentService) presignedGetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}
	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *AttachmentService) checkEnabled() error {
	if !s.config.AttachmentsEnabled() {
		return &common.Error{Kind: common.ErrorValidation, Msg: "Attachments are not enabled", Err: common.ErrStorageDisabled}
	}
	return nil
}

// ensureNote checks that the note exists and belongs to userID.
func (s *AttachmentService) ensureNote(ctx context.Context, noteID, userID string) error {
	if !validID(noteID) {
		return common.NotFound("Note not found")
	}
	if _, err := s.repomanager.Notes(s.db).Get(ctx, noteID, userID); err != nil {
		return noteError("Error fetching note", err)
	}
	return nil
}

func validateFileName(name string) error {
	if name == "" {
		return common.Validation("File name is required")
	}
	if utf8.RuneCountInString(name) > maxFileNameLength {
		return common.Validation("File name is too long")
	}
	if filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return common.Validation("File name must not contain a path")
	}
	return nil
}

// Create registers a pending attachment and returns it with a presigned PUT
// URL the client uploads the bytes to.
func (s *AttachmentService) Create(ctx context.Context, userID, noteID, fileName string) (*models.Attachment, string, error) {
	if err := s.checkEnabled(); err != nil {
		return nil, "", err
	}
	fileName = strings.TrimSpace(fileName)
	if err := validateFileName(fileName); err != nil {
		return nil, "", err
	}
	if err := s.ensureNote(ctx, noteID, userID); err != nil {
		return nil, "", err
	}

	key := GetRandomStorageKey(s.now())
	url, err := s.presignedPutURL(ctx, key)
	if err != nil {
		return nil, "", common.Internal("Error creating attachment", err)
	}

	a := &models.Attachment{
		NoteID:       noteID,
		UserID:       userID,
		FileName:     fileName,
		StorageKey:   key,
		UploadStatus: models.UploadPending,
	}
	if err := s.repomanager.Attachments(s.db).Create(ctx, a); err != nil {
		return nil, "", common.Internal("Error creating attachment", err)
	}
	return a, url, nil
}

// Complete marks an attachment as uploaded.
func (s *AttachmentService) Complete(ctx context.Context, userID, noteID, id string) (*models.Attachment, error) {
	a, err := s.get(ctx, userID, noteID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repomanager.Attachments(s.db).MarkUploaded(ctx, a.ID, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(errAttachmentNotFound)
		}
		return nil, common.Internal("Error completing attachment", err)
	}
	a.UploadStatus = models.UploadCompleted
	return a, nil
}

func (s *AttachmentService) List(ctx context.Context, userID, noteID string) ([]*models.Attachment, error) {
	if err := s.checkEnabled(); err != nil {
		return nil, err
	}
	if err := s.ensureNote(ctx, noteID, userID); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Attachments(s.db).ListByNote(ctx, noteID, userID)
	if err != nil {
		return nil, common.Internal("Error fetching attachments", err)
	}
	return list, nil
}

// DownloadURL returns a presigned GET URL for an uploaded attachment.
func (s *AttachmentService) DownloadURL(ctx context.Context, userID, noteID, id string) (*models.Attachment, string, error) {
	a, err := s.get(ctx, userID, noteID, id)
	if err != nil {
		return nil, "", err
	}
	if a.UploadStatus != models.UploadCompleted {
		return nil, "", common.Validation("Attachment upload is not completed")
	}
	url, err := s.presignedGetURL(ctx, a.StorageKey)
	if err != nil {
		return nil, "", common.Internal("Error creating download link", err)
	}
	return a, url, nil
}

func (s *AttachmentService) get(ctx context.Context, userID, noteID, id string) (*models.Attachment, error) {
	if err := s.checkEnabled(); err != nil {
		return nil, err
	}
	if !validID(noteID) || !validID(id) {
		return nil, common.NotFound(errAttachmentNotFound)
	}
	a, err := s.repomanager.Attachments(s.db).Get(ctx, id, noteID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(errAttachmentNotFound)
		}
		return nil, common.Internal("Error fetching attachment", err)
	}
	return a, nil
}
