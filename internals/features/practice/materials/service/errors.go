// file: internals/features/practice/materials/service/errors.go
package service

import "errors"

// Sentinel error pipeline materi. Controller memetakan tiap sentinel
// ke status + error_code envelope.
var (
	// ErrForbidden: pemanggil bukan admin. Tidak ada tulis yang terjadi.
	ErrForbidden = errors.New("hanya admin yang boleh menulis materi latihan")

	// ErrCategoryResolution: resolusi kategori default gagal total
	// (bootstrap gagal atau tabel tetap kosong). Aman dicoba ulang.
	ErrCategoryResolution = errors.New("resolusi kategori default gagal, coba lagi")

	// ErrUploadCollision: key objek sudah terpakai di bucket (forbid-overwrite).
	ErrUploadCollision = errors.New("nama objek sudah dipakai di storage")

	// ErrStorageUnavailable: OSS tidak terjangkau atau balas 5xx.
	ErrStorageUnavailable = errors.New("storage sedang tidak tersedia")

	// ErrThumbnailRejected: thumbnail tidak bisa didecode sebagai gambar.
	ErrThumbnailRejected = errors.New("thumbnail bukan gambar yang valid")
)
