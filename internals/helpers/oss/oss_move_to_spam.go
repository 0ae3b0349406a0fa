package helper

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func KeyFromPublicURL(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("empty key from URL")
	}
	return key, nil
}

// MoveToSpamByPublicURL memindahkan objek aktif -> spam/YYYY/MM/DD/HHMMSS__basename.
// Return URL tujuan (spam). Dipakai saat PDF materi diganti file baru.
func (s *OSSService) MoveToSpamByPublicURL(ctx context.Context, publicURL string) (string, error) {
	srcKey, err := KeyFromPublicURL(publicURL)
	if err != nil {
		return "", err
	}

	now := time.Now()
	base := path.Base(srcKey)
	dstKey := path.Join(
		"spam",
		now.Format("2006"), now.Format("01"), now.Format("02"),
		fmt.Sprintf("%s__%s", now.Format("150405"), base),
	)

	if _, err := s.Bucket.CopyObject(srcKey, dstKey, oss.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("copy %q -> %q: %w", srcKey, dstKey, err)
	}
	_ = s.Bucket.DeleteObject(srcKey, oss.WithContext(ctx)) // best-effort

	return s.PublicURL(dstKey), nil
}
