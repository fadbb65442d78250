package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/trapmeta/internal/apperrors"
	"github.com/five82/trapmeta/internal/trapapi"
)

// FolderReader is the part of the server API an export needs.
type FolderReader interface {
	LoadFolder(ctx context.Context, path string) (int, error)
	FetchImage(ctx context.Context, index int) (trapapi.ImageInfo, error)
}

// Report is the YAML document written by Export.
type Report struct {
	Folder string        `yaml:"folder"`
	Total  int           `yaml:"total"`
	Images []ImageRecord `yaml:"images"`
}

// ImageRecord is one picture of a Report. Metadata keeps server order.
type ImageRecord struct {
	Index      int              `yaml:"index"`
	Filename   string           `yaml:"filename"`
	Dimensions string           `yaml:"dimensions,omitempty"`
	SizeMB     float64          `yaml:"size_mb,omitempty"`
	Metadata   trapapi.Metadata `yaml:"metadata"`
	Error      string           `yaml:"error,omitempty"`
}

// Export loads folder on the server and writes the metadata of every image
// as YAML to w. Images that fail to load are recorded with their error and
// do not stop the export; a folder that cannot be loaded does.
func Export(ctx context.Context, api FolderReader, logger *slog.Logger, folder string, w io.Writer) (Report, error) {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return Report{}, apperrors.Validation("no folder to export")
	}

	total, err := api.LoadFolder(ctx, folder)
	if err != nil {
		return Report{}, fmt.Errorf("load folder: %w", err)
	}
	logger.Info("export started", "folder", folder, "total", total)

	report := Report{Folder: folder, Total: total, Images: make([]ImageRecord, 0, total)}
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		info, err := api.FetchImage(ctx, i)
		if err != nil {
			logger.Warn("export skipped image", "index", i, "error", err)
			report.Images = append(report.Images, ImageRecord{Index: i, Error: apperrors.UserMessage(err)})
			continue
		}
		report.Images = append(report.Images, ImageRecord{
			Index:      i,
			Filename:   info.Filename,
			Dimensions: info.Dimensions,
			SizeMB:     info.SizeMB,
			Metadata:   info.Metadata,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return report, fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return report, fmt.Errorf("encode report: %w", err)
	}
	logger.Info("export finished", "folder", folder, "images", len(report.Images))
	return report, nil
}
