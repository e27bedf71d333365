package util

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/oschwald/geoip2-golang"
	cache "github.com/patrickmn/go-cache"
)

var (
	geoipDB        *geoip2.Reader
	geoipCache     *cache.Cache
	geoipCacheHits int64
	geoipCacheMiss int64
)

// InitGeoIP initializes the local GeoIP2 database reader and an in-memory cache.
// Provide the path to a GeoIP2/GeoLite2 .mmdb file via `dbPath`.
// If dbPath is empty or the file cannot be opened, initialization is a no-op.
func InitGeoIP(dbPath string) error {
	// Allow callers to pass dbPath or fall back to env var
	if dbPath == "" {
		dbPath = os.Getenv("GEOIP_DB_PATH")
	}
	if dbPath == "" {
		return nil
	}

	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoipDB = r
	// Cache entries for 24h, purge every hour
	geoipCache = cache.New(24*time.Hour, 1*time.Hour)
	return nil
}

// CloseGeoIP closes the GeoIP DB if opened.
func CloseGeoIP() {
	if geoipDB != nil {
		_ = geoipDB.Close()
		geoipDB = nil
	}
}

// EnsureGeoIP prepares the GeoIP database for event location enrichment.
// When GEOIP_DB_PATH points to a missing file and GEOIP_DOWNLOAD_URL is set,
// the database is downloaded first. Enrichment is optional, so a missing
// configuration is not an error.
func EnsureGeoIP(ctx context.Context) error {
	dbPath := os.Getenv("GEOIP_DB_PATH")
	if dbPath == "" {
		return nil
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		url := os.Getenv("GEOIP_DOWNLOAD_URL")
		if url == "" {
			return fmt.Errorf("geoip db %s missing and GEOIP_DOWNLOAD_URL not set", dbPath)
		}
		if _, err := DownloadGeoIP(ctx, url, dbPath); err != nil {
			return fmt.Errorf("download geoip db: %w", err)
		}
		if err := ValidateGeoIP(dbPath); err != nil {
			return fmt.Errorf("validate geoip db: %w", err)
		}
	}
	return InitGeoIP(dbPath)
}

// DownloadGeoIP downloads a GeoIP MMDB file from `url` and writes it to `destPath`.
// If the downloaded content is gzip-compressed (URL ends with .gz), it will be
// decompressed automatically. Returns the final path written.
func DownloadGeoIP(ctx context.Context, url, destPath string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download, status: %d", resp.StatusCode)
	}

	tmpDir := filepath.Dir(destPath)
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", err
	}

	tmpFile, err := os.CreateTemp(tmpDir, "geoip-*.tmp")
	if err != nil {
		return "", err
	}
	defer func() { _ = tmpFile.Close() }()

	// If URL looks like a gzipped file, decompress on the fly
	if filepath.Ext(url) == ".gz" {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", err
		}
		defer gzReader.Close()
		if _, err := io.Copy(tmpFile, gzReader); err != nil {
			return "", err
		}
	} else {
		if _, err := io.Copy(tmpFile, resp.Body); err != nil {
			return "", err
		}
	}

	if err := tmpFile.Sync(); err != nil {
		return "", err
	}
	if err := tmpFile.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmpFile.Name(), destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

// ValidateGeoIP attempts to open the MMDB file to ensure it's a valid DB.
func ValidateGeoIP(path string) error {
	r, err := geoip2.Open(path)
	if err != nil {
		return err
	}
	_ = r.Close()
	return nil
}

// GetIPLocation returns city and country name for the provided IP using the
// local GeoIP database with an in-memory cache. Returns empty strings when
// a lookup is not available.
func GetIPLocation(ip string) (string, string) {
	if ip == "" {
		return "", ""
	}

	// Skip common private/local ranges quickly
	if ip == "127.0.0.1" || ip == "::1" ||
		(len(ip) >= 4 && ip[:4] == "10.") ||
		(len(ip) >= 8 && ip[:8] == "192.168") ||
		(len(ip) >= 2 && ip[:2] == "::") {
		return "", ""
	}

	if geoipCache != nil {
		if v, ok := geoipCache.Get(ip); ok {
			atomic.AddInt64(&geoipCacheHits, 1)
			if arr, ok := v.([]string); ok && len(arr) == 2 {
				return arr[0], arr[1]
			}
		}
		atomic.AddInt64(&geoipCacheMiss, 1)
	}

	if geoipDB == nil {
		return "", ""
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", ""
	}

	record, err := geoipDB.City(parsed)
	if err != nil {
		return "", ""
	}

	city := record.City.Names["en"]
	country := record.Country.Names["en"]

	if geoipCache != nil {
		geoipCache.Set(ip, []string{city, country}, cache.DefaultExpiration)
	}
	return city, country
}

// GeoIPCacheStats reports cache hit/miss counters for observability.
func GeoIPCacheStats() (hits, misses int64) {
	return atomic.LoadInt64(&geoipCacheHits), atomic.LoadInt64(&geoipCacheMiss)
}
