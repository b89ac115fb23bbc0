package middleware

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAssetVersions(t *testing.T) {
	root := t.TempDir()
	css := filepath.Join(root, AssetCSS)
	require.NoError(t, os.MkdirAll(filepath.Dir(css), 0o755))
	require.NoError(t, os.WriteFile(css, []byte("body { color: #111; }"), 0o644))
	empty := t.TempDir()
	t.Cleanup(func() { InitAssetVersions(empty) })

	InitAssetVersions(root)
	ctx := context.Background()

	v := GetAssetVersion(ctx, AssetCSS)
	assert.Len(t, v, 8)
	assert.Equal(t, computeFileHash(css), v)
	assert.Equal(t, "/"+AssetCSS+"?v="+v, AssetURL(ctx, AssetCSS))

	// missing files fall back to "1"
	assert.Equal(t, "1", GetAssetVersion(ctx, AssetAppJS))
	assert.Equal(t, "1", GetAssetVersion(ctx, "static/unknown.js"))

	// a changed file gets a new version on the next init
	require.NoError(t, os.WriteFile(css, []byte("body { color: #222; }"), 0o644))
	InitAssetVersions(root)
	assert.NotEqual(t, v, GetAssetVersion(ctx, AssetCSS))
}

func TestComputeFileHashMissingFile(t *testing.T) {
	assert.Empty(t, computeFileHash(filepath.Join(t.TempDir(), "nope.css")))
}
