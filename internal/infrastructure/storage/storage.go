// Package storage archiva los ficheros originales de las importaciones (disco local, S3 o memoria).
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/LabOps-api/internal/application/importing"
	"github.com/jhoicas/LabOps-api/pkg/config"
)

// ErrExists el objeto ya existe; los archivos de importación no se sobrescriben.
var ErrExists = errors.New("storage: el objeto ya existe")

// New construye el archivador configurado. Con driver "none" devuelve nil (sin archivo).
func New(ctx context.Context, cfg config.StorageConfig) (importing.Archiver, error) {
	switch cfg.Driver {
	case "", config.StorageDriverNone:
		return nil, nil
	case config.StorageDriverFS:
		return NewFSArchiver(cfg.FSRoot)
	case config.StorageDriverS3:
		return NewS3Archiver(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}

// cleanKey impide claves vacías, absolutas o con "..".
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return "", fmt.Errorf("storage: clave vacía")
	case strings.HasPrefix(key, "/"):
		return "", fmt.Errorf("storage: clave absoluta %q", key)
	case strings.Contains(key, ".."):
		return "", fmt.Errorf("storage: clave inválida %q", key)
	}
	return key, nil
}
