package uploads

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiskApi(t *testing.T) {
	_, err := NewDiskApi("")
	require.Error(t, err)

	rootPath := path.Join(t.TempDir(), "uploads")
	api, err := NewDiskApi(rootPath)
	require.NoError(t, err)
	require.NotNil(t, api)

	// the directory gets created eagerly
	info, err := os.Stat(rootPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDiskApi_Save(t *testing.T) {
	rootPath := t.TempDir()
	api, err := NewDiskApi(rootPath)
	require.NoError(t, err)

	now := time.Now()
	api.NowFunc = func() time.Time { return now }

	filePath, err := api.Save(context.Background(), SaveFileParams{
		Filename: "Logo Empresa.PNG",
		File:     strings.NewReader("png bytes here"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filePath, PublicPathPrefix))
	fileName := strings.TrimPrefix(filePath, PublicPathPrefix)
	assert.True(t, strings.HasPrefix(fileName, fmt.Sprintf("%d-", now.UnixMilli())))
	// extension comes from the original name, lowercased
	assert.True(t, strings.HasSuffix(fileName, ".png"))
	// the client file name itself never makes it into the stored name
	assert.NotContains(t, fileName, "Logo")

	content, err := os.ReadFile(path.Join(rootPath, fileName))
	require.NoError(t, err)
	assert.Equal(t, "png bytes here", string(content))
}

func TestDiskApi_Save_UniqueNames(t *testing.T) {
	api, err := NewDiskApi(t.TempDir())
	require.NoError(t, err)

	now := time.Now()
	api.NowFunc = func() time.Time { return now }

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		filePath, err := api.Save(context.Background(), SaveFileParams{
			Filename: "a.png",
			File:     strings.NewReader("x"),
		})
		require.NoError(t, err)
		assert.False(t, seen[filePath], "duplicate file name: %s", filePath)
		seen[filePath] = true
	}
}

func TestDiskApi_Resolve(t *testing.T) {
	rootPath := t.TempDir()
	api, err := NewDiskApi(rootPath)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path.Join(rootPath, "known.png"), []byte("x"), 0o644))

	resolved, err := api.Resolve("known.png")
	require.NoError(t, err)
	assert.Equal(t, path.Join(rootPath, "known.png"), resolved)

	for caseName, fileName := range map[string]string{
		"empty":          "",
		"missing":        "nope.png",
		"traversal":      "../secret.txt",
		"nested":         "sub/file.png",
		"windows-style":  `..\secret.txt`,
		"dot-dot-middle": "a..b/../x",
	} {
		t.Run(caseName, func(t *testing.T) {
			_, err := api.Resolve(fileName)
			require.ErrorIs(t, err, ErrFileNotFound)
		})
	}
}
