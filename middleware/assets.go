package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Static assets referenced by the layout with a cache-busting version
const (
	AssetCSS     = "static/css/style.css"
	AssetAppJS   = "static/js/app.js"
	AssetFavicon = "static/images/favicon.svg"
)

var versionedAssets = []string{AssetCSS, AssetAppJS, AssetFavicon}

var (
	assetVersionsMu sync.RWMutex
	assetVersions   = map[string]string{}
)

// InitAssetVersions hashes the versioned assets found under root (the
// working directory when empty). Missing files keep version "1".
func InitAssetVersions(root string) {
	versions := make(map[string]string, len(versionedAssets))
	for _, path := range versionedAssets {
		if v := computeFileHash(filepath.Join(root, path)); v != "" {
			versions[path] = v
		}
	}

	assetVersionsMu.Lock()
	assetVersions = versions
	assetVersionsMu.Unlock()
	log.Printf("[INFO] Asset versions initialized: %d of %d files", len(versions), len(versionedAssets))
}

// computeFileHash returns the first 8 hex characters of the file's MD5
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}
	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetAssetVersion returns the version hash of a static asset, "1" when unknown
func GetAssetVersion(ctx context.Context, path string) string {
	assetVersionsMu.RLock()
	defer assetVersionsMu.RUnlock()
	if version, ok := assetVersions[path]; ok {
		return version
	}
	return "1"
}

// AssetURL returns "/" + path with its version query appended
func AssetURL(ctx context.Context, path string) string {
	return "/" + path + "?v=" + GetAssetVersion(ctx, path)
}
