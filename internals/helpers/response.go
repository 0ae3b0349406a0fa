package helper

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ✅ Konversi error validator.v10 → map field → pesan (semua pelanggaran, bukan cuma yang pertama)
func ValidationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	if err == nil {
		return out
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_payload"] = append(out["_payload"], "payload tidak valid")
		return out
	}

	for _, fieldErr := range ve {
		field := fieldErr.Field()
		out[field] = append(out[field], validationMessage(fieldErr))
	}
	return out
}

// pesan kustom per tag
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "max":
		return fmt.Sprintf("maksimal %s karakter", fe.Param())
	case "min":
		return fmt.Sprintf("minimal %s karakter", fe.Param())
	case "oneof":
		return fmt.Sprintf("harus salah satu dari: %s", fe.Param())
	case "uuid":
		return "harus UUID yang valid"
	default:
		return fmt.Sprintf("tidak valid (%s)", fe.Tag())
	}
}
