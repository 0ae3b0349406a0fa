package helper

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService adalah facade upload/hapus yang seragam untuk controller practice zone.

- UploadPDF  : upload PDF materi apa adanya (disposition inline).
- UploadThumbnail : re-encode gambar → WebP lalu upload.
- DeleteByPublicURL : hapus objek dari URL publiknya.
- MoveToSpam : singkirkan objek lama (best-effort) saat file diganti.
*/

type BlobService interface {
	UploadPDF(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL, contentType string, err error)
	UploadThumbnail(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
	MoveToSpam(ctx context.Context, publicURL string) (spamURL string, err error)
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS (OSSService)
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// Buat instance dari ENV. prefix opsional (contoh: "practice/")
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadPDF(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	key, ct, err := b.svc.UploadFromFormFileToDir(ctx, dir, fh)
	if err != nil {
		return "", "", err
	}
	return b.svc.PublicURL(key), ct, nil
}

func (b *OSSBlobService) UploadThumbnail(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	return b.svc.UploadAsWebP(ctx, fh, dir)
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "URL kosong")
	}
	if err := b.svc.DeleteByPublicURL(ctx, publicURL); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("Gagal hapus object: %v", err))
	}
	return nil
}

func (b *OSSBlobService) MoveToSpam(ctx context.Context, publicURL string) (string, error) {
	if strings.TrimSpace(publicURL) == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "URL kosong")
	}
	return b.svc.MoveToSpamByPublicURL(ctx, publicURL)
}

// --------------------------------------------------
// Helper kecil untuk controller
// --------------------------------------------------

// IsMultipart menilai request multipart/form-data
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

// GetFormFile mencari file dari beberapa kemungkinan field form.
// Jika tidak ada file, kembalikan (nil, nil) supaya controller bisa fallback.
func GetFormFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, nil
	}
	for _, fn := range fieldNames {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, nil
}

// --------------------------------------------------
// Mock untuk unit test
// --------------------------------------------------

type MockBlobService struct {
	UploadPDFFn         func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error)
	UploadThumbnailFn   func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error)
	DeleteByPublicURLFn func(ctx context.Context, publicURL string) error
	MoveToSpamFn        func(ctx context.Context, publicURL string) (string, error)
}

func (m *MockBlobService) UploadPDF(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if m.UploadPDFFn == nil {
		return "", "", errors.New("not implemented")
	}
	return m.UploadPDFFn(ctx, dir, fh)
}

func (m *MockBlobService) UploadThumbnail(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	if m.UploadThumbnailFn == nil {
		return "", errors.New("not implemented")
	}
	return m.UploadThumbnailFn(ctx, dir, fh)
}

func (m *MockBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if m.DeleteByPublicURLFn == nil {
		return errors.New("not implemented")
	}
	return m.DeleteByPublicURLFn(ctx, publicURL)
}

func (m *MockBlobService) MoveToSpam(ctx context.Context, publicURL string) (string, error) {
	if m.MoveToSpamFn == nil {
		return "", errors.New("not implemented")
	}
	return m.MoveToSpamFn(ctx, publicURL)
}
