package helper

import (
	"context"
	"log"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/robfig/cron/v3"
)

// SpamReaperConfig semua dari ENV, lihat StartSpamReaperCron.
type SpamReaperConfig struct {
	Prefix        string
	RetentionDays int
	CronSchedule  string
	DryRun        bool
}

func envOr(key, def string) string {
	if v := getEnv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch getEnv(key) {
	case "":
		return def
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	default:
		return false
	}
}

// StartSpamReaperCron menghapus permanen objek di prefix spam/ yang sudah
// melewati masa retensi. PDF/thumbnail materi yang diganti atau dihapus
// diparkir ke spam/ oleh MoveToSpamByPublicURL; cron ini penyapunya.
// Panggil dari main.go; otomatis skip kalau ENV ALI_OSS_* tidak lengkap.
func StartSpamReaperCron() {
	cfg := SpamReaperConfig{
		Prefix:        envOr("SPAM_REAPER_PREFIX", "spam/"),
		RetentionDays: envInt("SPAM_RETENTION_DAYS", 30),
		CronSchedule:  envOr("SPAM_REAPER_SCHEDULE", "15 2 * * *"),
		DryRun:        envBool("SPAM_REAPER_DRY_RUN", false),
	}

	svc, err := NewOSSServiceFromEnv("")
	if err != nil {
		log.Printf("[SPAM-REAPER] ENV ALI_OSS_* tidak lengkap, reaper tidak dijalankan: %v", err)
		return
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		if err := sweepSpamPrefix(ctx, svc.Bucket, cfg.Prefix, retention, cfg.DryRun); err != nil {
			log.Printf("[SPAM-REAPER] sweep error: %v", err)
		}
	})
	if err != nil {
		log.Printf("[SPAM-REAPER] jadwal %q tidak valid: %v", cfg.CronSchedule, err)
		return
	}

	log.Printf("[SPAM-REAPER] started schedule=%q prefix=%q retention=%dd dryRun=%v",
		cfg.CronSchedule, cfg.Prefix, cfg.RetentionDays, cfg.DryRun)
	c.Start()
}

func sweepSpamPrefix(ctx context.Context, bucket *oss.Bucket, prefix string, retention time.Duration, dryRun bool) error {
	threshold := time.Now().Add(-retention)
	log.Printf("[SPAM-REAPER] scanning prefix=%q threshold=%s dry=%v", prefix, threshold.Format(time.RFC3339), dryRun)

	marker := oss.Marker("")
	var keysToDelete []string
	total := 0

	for {
		lor, err := bucket.ListObjects(oss.Prefix(prefix), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return err
		}
		for _, obj := range lor.Objects {
			total++
			if obj.Key == "" {
				continue
			}
			if obj.LastModified.Before(threshold) {
				keysToDelete = append(keysToDelete, obj.Key)
			}
		}
		if lor.IsTruncated {
			marker = oss.Marker(lor.NextMarker)
		} else {
			break
		}
	}

	if len(keysToDelete) == 0 {
		log.Printf("[SPAM-REAPER] nothing to delete; scanned=%d under %q", total, prefix)
		return nil
	}
	if dryRun {
		log.Printf("[SPAM-REAPER] DRY-RUN would delete %d/%d objects under %q", len(keysToDelete), total, prefix)
		return nil
	}

	deleted := 0
	for i := 0; i < len(keysToDelete); i += 1000 {
		end := i + 1000
		if end > len(keysToDelete) {
			end = len(keysToDelete)
		}
		batch := keysToDelete[i:end]
		if _, err := bucket.DeleteObjects(batch, oss.DeleteObjectsQuiet(true), oss.WithContext(ctx)); err != nil {
			log.Printf("[SPAM-REAPER] delete batch %d-%d gagal: %v", i, end, err)
			continue
		}
		deleted += len(batch)
	}
	log.Printf("[SPAM-REAPER] deleted %d objects (scanned=%d) under %q", deleted, total, prefix)
	return nil
}
