// Package share implements the two user actions: uploading a file under a
// key derived from the uploader's identity and secret, and downloading a
// file by recomputing that key from an email and a composed secret.
//
// Every failure is returned to the caller and converted to display text with
// Message; nothing is retried.
package share

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/s3share/internal/common"
	"github.com/dmitrijs2005/s3share/internal/identity"
	"github.com/dmitrijs2005/s3share/internal/logging"
	"github.com/dmitrijs2005/s3share/internal/metrics"
	"github.com/dmitrijs2005/s3share/internal/sharekey"
	"github.com/dmitrijs2005/s3share/internal/storage"
)

// File is an uploaded file as received from the form.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// UploadResult describes a stored file.
type UploadResult struct {
	Key            sharekey.Key
	ComposedSecret string
	Message        string
}

// Download is a fetched file.
type Download struct {
	Key      sharekey.Key
	Filename string
	Object   storage.Object
}

type Service struct {
	store          storage.Store
	logger         logging.Logger
	metrics        *metrics.Metrics
	maxUploadBytes int64
	now            func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService builds a Service. A maxUploadBytes of zero disables the size
// check.
func NewService(store storage.Store, logger logging.Logger, m *metrics.Metrics, maxUploadBytes int64) *Service {
	return &Service{
		store:          store,
		logger:         logger.With("component", "share"),
		metrics:        m,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
		inflight:       make(map[string]struct{}),
	}
}

// Upload stores file under the key derived from the session email and
// secret. Only one upload per session runs at a time.
func (s *Service) Upload(ctx context.Context, sess *identity.Session, secret string, file *File) (*UploadResult, error) {
	if !sess.Authenticated(s.now()) {
		s.countUpload(metrics.ResultRejected)
		return nil, common.ErrorUnauthorized
	}
	if file == nil {
		s.countUpload(metrics.ResultRejected)
		return nil, ErrNoFile
	}
	if secret == "" {
		s.countUpload(metrics.ResultRejected)
		return nil, ErrEmptySecret
	}
	if size := int64(len(file.Body)); s.maxUploadBytes > 0 && size > s.maxUploadBytes {
		s.countUpload(metrics.ResultRejected)
		return nil, fmt.Errorf("%w: %s exceeds the %s limit",
			ErrFileTooLarge, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(s.maxUploadBytes)))
	}

	if !s.begin(sess.ID) {
		s.countUpload(metrics.ResultRejected)
		return nil, ErrUploadInProgress
	}
	defer s.end(sess.ID)

	ext := sharekey.FileExtension(file.Name)
	key := sharekey.DeriveUploadKey(sess.Email, secret, ext)

	obj := storage.Object{Body: file.Body, ContentType: file.ContentType}
	if err := s.store.Put(ctx, key.String(), obj, sess.IDToken); err != nil {
		s.logger.Warn(ctx, "upload failed", "key", key.String(), "error", err)
		s.countUpload(metrics.ResultError)
		return nil, &UploadError{Err: err}
	}

	composed := sharekey.ComposeSecret(secret, ext)
	s.logger.Info(ctx, "file uploaded", "key", key.String(), "size", humanize.IBytes(uint64(len(file.Body))))
	s.countUpload(metrics.ResultOK)
	if s.metrics != nil {
		s.metrics.UploadBytes.Add(float64(len(file.Body)))
	}

	return &UploadResult{
		Key:            key,
		ComposedSecret: composed,
		Message:        fmt.Sprintf("File uploaded successfully! Secret to share is %s", composed),
	}, nil
}

// Download fetches the file stored under the key derived from email and the
// composed secret. Requester input is not verified beyond being present.
func (s *Service) Download(ctx context.Context, email, composedSecret string) (*Download, error) {
	if email == "" || composedSecret == "" {
		s.countDownload(metrics.ResultRejected)
		return nil, ErrMissingFields
	}

	_, ext := sharekey.SplitComposedSecret(composedSecret)
	key := sharekey.DeriveDownloadKey(email, composedSecret)

	obj, err := s.store.Get(ctx, key.String())
	if err != nil {
		result := metrics.ResultError
		if errors.Is(err, common.ErrorNotFound) {
			result = metrics.ResultNotFound
		}
		s.logger.Info(ctx, "download failed", "key", key.String(), "error", err)
		s.countDownload(result)
		return nil, &DownloadError{Err: err}
	}

	filename := "download"
	if ext != "" {
		filename += "." + ext
	}

	s.logger.Info(ctx, "file downloaded", "key", key.String())
	s.countDownload(metrics.ResultOK)

	return &Download{Key: key, Filename: filename, Object: obj}, nil
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *Service) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

func (s *Service) countUpload(result string) {
	if s.metrics != nil {
		s.metrics.Uploads.WithLabelValues(result).Inc()
	}
}

func (s *Service) countDownload(result string) {
	if s.metrics != nil {
		s.metrics.Downloads.WithLabelValues(result).Inc()
	}
}
