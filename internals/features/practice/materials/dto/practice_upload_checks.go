// file: internals/features/practice/materials/dto/practice_upload_checks.go
package dto

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"latihanku_backend/internals/constants"
)

/*
Pemeriksaan file upload SEBELUM menyentuh storage/DB.
Pelanggaran dikumpulkan sebagai pesan per field supaya bisa digabung ke
batch validasi draft (error code UPLOAD_REJECTED).
*/

// CheckPDFUpload memeriksa lampiran PDF materi: ekstensi, content type
// (header + sniffing isi), dan ukuran maksimal 10MB.
func CheckPDFUpload(fh *multipart.FileHeader) []string {
	if fh == nil {
		return nil
	}
	var msgs []string

	if fh.Size > constants.MaxPDFUploadBytes {
		msgs = append(msgs, fmt.Sprintf("ukuran file maksimal %dMB", constants.MaxPDFUploadBytes/(1024*1024)))
	}

	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileTypePDF {
		msgs = append(msgs, "file harus berekstensi .pdf")
	}

	if declared := normalizedContentType(fh); declared != "" && declared != constants.MIMEApplicationPDF {
		msgs = append(msgs, "content type harus "+constants.MIMEApplicationPDF)
	}

	if sniffed := sniffContentType(fh); sniffed != "" && sniffed != constants.MIMEApplicationPDF {
		msgs = append(msgs, "isi file bukan PDF")
	}

	return msgs
}

// CheckThumbnailUpload memeriksa thumbnail: harus gambar, maksimal 5MB.
func CheckThumbnailUpload(fh *multipart.FileHeader) []string {
	if fh == nil {
		return nil
	}
	var msgs []string

	if fh.Size > constants.MaxImageUploadBytes {
		msgs = append(msgs, fmt.Sprintf("ukuran thumbnail maksimal %dMB", constants.MaxImageUploadBytes/(1024*1024)))
	}

	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileTypeImage {
		msgs = append(msgs, "thumbnail harus PNG/JPG/WebP")
	}

	if sniffed := sniffContentType(fh); sniffed != "" && !strings.HasPrefix(sniffed, "image/") {
		msgs = append(msgs, "isi file bukan gambar")
	}

	return msgs
}

func normalizedContentType(fh *multipart.FileHeader) string {
	ct := strings.TrimSpace(fh.Header.Get("Content-Type"))
	if ct == "" {
		return ""
	}
	// buang parameter (mis. "; charset=utf-8")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// sniffContentType membaca 512 byte pertama. "" kalau file tidak kebaca
// (biar pemeriksaan lain yang bicara).
func sniffContentType(fh *multipart.FileHeader) string {
	f, err := fh.Open()
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if n == 0 || (err != nil && n <= 0) {
		return ""
	}

	sniffed := http.DetectContentType(buf[:n])
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = sniffed[:i]
	}
	return strings.ToLower(strings.TrimSpace(sniffed))
}
