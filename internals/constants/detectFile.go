package constants

import (
	"path/filepath"
	"strings"
)

// Kode jenis file untuk lampiran materi.
const (
	FileTypeDocx    = 3
	FileTypePDF     = 4
	FileTypeImage   = 6
	FileTypeUnknown = 99
)

// Batas ukuran upload (byte).
const (
	MaxPDFUploadBytes   = 10 * 1024 * 1024 // 10MB untuk PDF materi
	MaxImageUploadBytes = 5 * 1024 * 1024  // 5MB untuk thumbnail
)

// Content type yang diterima untuk PDF materi.
const MIMEApplicationPDF = "application/pdf"

func DetectFileTypeFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".doc", ".docx":
		return FileTypeDocx
	case ".pdf":
		return FileTypePDF
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileTypeImage
	default:
		return FileTypeUnknown // Tidak diketahui
	}
}
