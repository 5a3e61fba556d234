package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paginadofounder/backend/internal/telemetry/tracing"
	"github.com/paginadofounder/backend/pkg"
)

// PublicPathPrefix is where saved files get served from.
const PublicPathPrefix = "/uploads/"

var ErrFileNotFound = errors.New("file not found")

// DiskApi stores uploaded images flat in a single directory. File names
// are generated here so a client-supplied name never touches the disk.
type DiskApi struct {
	rootPath string

	// NowFunc is used in tests to control the generated file names
	NowFunc func() time.Time
}

func NewDiskApi(rootPath string) (*DiskApi, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}

	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	return &DiskApi{
		rootPath: rootPath,
		NowFunc:  time.Now,
	}, nil
}

type SaveFileParams struct {
	// Filename as sent by the client, used only for its extension
	Filename string
	File     io.Reader
}

// Save writes the file to disk under a generated name and returns the
// public path it will be served from.
func (da *DiskApi) Save(ctx context.Context, params SaveFileParams) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskApi.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("file.name", params.Filename))

	suffix, err := pkg.GenerateRandomHexString(4)
	if err != nil {
		return "", fmt.Errorf("generate file name suffix: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(params.Filename))
	newFileName := fmt.Sprintf("%d-%s%s", da.NowFunc().UnixMilli(), suffix, ext)
	newFilePath := path.Join(da.rootPath, newFileName)

	dst, err := os.Create(newFilePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, params.File); err != nil {
		return "", err
	}

	log.Debugf("disk api: saved new file: %s", newFileName)

	return PublicPathPrefix + newFileName, nil
}

// Resolve maps a requested file name to its on-disk path, rejecting
// anything that would escape the uploads directory.
func (da *DiskApi) Resolve(fileName string) (string, error) {
	if fileName == "" || strings.Contains(fileName, "..") || strings.ContainsAny(fileName, "/\\") {
		return "", ErrFileNotFound
	}

	filePath := path.Join(da.rootPath, fileName)
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		return "", ErrFileNotFound
	}

	return filePath, nil
}
