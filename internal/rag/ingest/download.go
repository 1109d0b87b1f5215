package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/config"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/customHttpClient"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/pkg/logger_i"
)

// Downloader fetches remote documents with size guards. A HEAD probe runs
// first so oversized or opaque binary blobs are skipped without pulling a
// single content byte.
type Downloader struct {
	client *http.Client
	logger *logger_i.Logger
}

func NewDownloader() *Downloader {
	return &Downloader{
		client: customHttpClient.NewPooledClient(),
		logger: logger_i.NewLogger("downloader"),
	}
}

// NewDownloaderWithClient exists for tests running against httptest servers.
func NewDownloaderWithClient(client *http.Client) *Downloader {
	return &Downloader{
		client: client,
		logger: logger_i.NewLogger("downloader"),
	}
}

// Fetch downloads url. skipped=true with a nil error means the file was
// deliberately not downloaded (unidentifiable binary, or binary above the
// skip threshold); the caller answers from knowledge in that case.
func (d *Downloader) Fetch(ctx context.Context, url string) (content []byte, contentType string, skipped bool, err error) {
	contentLength, contentType := d.probe(ctx, url)

	if contentLength > 0 {
		sizeMB := float64(contentLength) / (1024 * 1024)
		fileType, _ := DetectFileType(url, contentType, nil)

		if fileType == docmodel.Binary && sizeMB > config.MaxBinarySkipSizeMB {
			d.logger.Info("skipping large binary file", "sizeMB", sizeMB)
			return nil, contentType, true, nil
		}
		if sizeMB > config.MaxDownloadSizeMB {
			d.logger.Info("skipping oversized file", "sizeMB", sizeMB)
			return nil, contentType, true, nil
		}
	} else {
		// no size info: known binary extensions are not worth the gamble
		if fileType, _ := DetectFileType(url, contentType, nil); fileType == docmodel.Binary {
			d.logger.Info("skipping binary file of unknown size", "url", url)
			return nil, contentType, true, nil
		}
	}

	getCtx, cancel := context.WithTimeout(ctx, config.DownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(getCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, contentType, false, fmt.Errorf("building download request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, contentType, false, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, contentType, false, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		contentType = ct
	}

	maxBytes := int64(config.MaxDownloadSizeMB) * 1024 * 1024
	content, err = io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, contentType, false, fmt.Errorf("reading download body: %w", err)
	}
	if int64(len(content)) > maxBytes {
		return nil, contentType, false, fmt.Errorf("file size exceeded %dMB during download", config.MaxDownloadSizeMB)
	}

	d.logger.Info("downloaded document", "bytes", len(content), "contentType", contentType)
	return content, contentType, false, nil
}

// probe issues the HEAD request. Probe failures are not fatal, the download
// just proceeds without size information.
func (d *Downloader) probe(ctx context.Context, url string) (contentLength int64, contentType string) {
	probeCtx, cancel := context.WithTimeout(ctx, config.DownloadProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, url, nil)
	if err != nil {
		return 0, ""
	}
	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Warn("head probe failed, proceeding without size info", "error", err)
		return 0, ""
	}
	defer resp.Body.Close()

	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			contentLength = n
		}
	}
	return contentLength, resp.Header.Get("Content-Type")
}
