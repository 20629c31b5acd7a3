// Package fetchers downloads SDO imagery from the NASA latest-image
// endpoints and the Helioviewer API and persists it with a JSON sidecar.
package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/morikuni/failure/v2"

	"sdofetch/internal/catalog"
	"sdofetch/internal/config"
	"sdofetch/internal/logger"
	"sdofetch/internal/models"
	"sdofetch/internal/storage"
)

// Fetcher resolves catalog sources, downloads imagery and persists it
type Fetcher struct {
	client *resty.Client
	cfg    *config.Config
	store  storage.Client
}

// FetchResult holds the payload and provenance of one successful download
type FetchResult struct {
	Payload         []byte
	URL             string
	Method          string
	LastModified    string
	ObservationDate string
	RequestedDate   string
}

// New creates a new fetcher instance
func New(cfg *config.Config, store storage.Client) *Fetcher {
	client := resty.New()
	client.SetTimeout(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second)
	client.SetTransport(logger.Transport())

	return &Fetcher{
		client: client,
		cfg:    cfg,
		store:  store,
	}
}

// FetchDirect downloads the pre-rendered latest image from the SDO site.
// The Last-Modified header carries the observation time of the image.
func (f *Fetcher) FetchDirect(ctx context.Context, src catalog.Source) (*FetchResult, error) {
	url := fmt.Sprintf("%slatest_1024_%s.jpg", f.cfg.SDOLatestBaseURL, src.LatestCode)

	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(NetworkFailure),
			failure.Context{"url": url},
		)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, failure.New(RemoteStatus,
			failure.Message("SDO latest-image endpoint returned non-success status"),
			failure.Context{
				"url":    url,
				"status": fmt.Sprintf("%d", resp.StatusCode()),
			},
		)
	}

	return &FetchResult{
		Payload:      resp.Body(),
		URL:          url,
		Method:       "direct",
		LastModified: resp.Header().Get("Last-Modified"),
	}, nil
}

// Fetch downloads the latest image for a source, trying the direct
// endpoint first and falling back to the Helioviewer API.
func (f *Fetcher) Fetch(ctx context.Context, src catalog.Source) (*FetchResult, error) {
	res, err := f.FetchDirect(ctx, src)
	if err == nil {
		return res, nil
	}

	logger.Warn("Direct fetch failed, falling back to Helioviewer",
		"source", src.Name, "error", err)

	return f.FetchHelioviewer(ctx, src)
}

// Persist writes the image payload and its metadata sidecar, naming both
// with the source name and a shared UTC timestamp token.
func (f *Fetcher) Persist(ctx context.Context, res *FetchResult, src catalog.Source) (imagePath, metaPath string, err error) {
	now := time.Now().UTC()
	base := fmt.Sprintf("SDO_%s_%s", src.Name, now.Format("20060102_150405"))

	ext := strings.TrimPrefix(mimetype.Detect(res.Payload).Extension(), ".")
	if ext == "" {
		ext = "jpg"
	}

	imagePath, err = f.store.StoreFile(ctx, base+"."+ext, res.Payload)
	if err != nil {
		return "", "", fmt.Errorf("failed to store image: %w", err)
	}

	meta := models.Metadata{
		Source:          src.Name,
		Description:     src.Description,
		Wavelength:      src.Wavelength,
		Filepath:        imagePath,
		DownloadTime:    now.Format(time.RFC3339),
		ImageURL:        res.URL,
		Method:          res.Method,
		LastModified:    res.LastModified,
		ObservationDate: res.ObservationDate,
		RequestedDate:   res.RequestedDate,
	}

	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal metadata: %w", err)
	}

	metaPath, err = f.store.StoreFile(ctx, base+".json", metaJSON)
	if err != nil {
		return "", "", fmt.Errorf("failed to store metadata: %w", err)
	}

	return imagePath, metaPath, nil
}

// FetchOne resolves, fetches and persists a single source by name
func (f *Fetcher) FetchOne(ctx context.Context, name string) models.Result {
	result := models.Result{Source: name}

	src, err := catalog.Resolve(name)
	if err != nil {
		result.Err = err
		return result
	}

	logger.Info("Fetching latest image",
		"source", src.Name, "wavelength", src.Wavelength)

	res, err := f.Fetch(ctx, src)
	if err != nil {
		result.Err = err
		return result
	}

	imagePath, metaPath, err := f.Persist(ctx, res, src)
	if err != nil {
		result.Err = err
		return result
	}

	result.ImagePath = imagePath
	result.MetaPath = metaPath

	logger.Info("Image saved",
		"source", src.Name, "image", imagePath, "metadata", metaPath, "method", res.Method)

	return result
}

// FetchMany fetches sources sequentially, best-effort. A failure on one
// source is logged and recorded; the remaining sources still run.
func (f *Fetcher) FetchMany(ctx context.Context, names []string) []models.Result {
	results := make([]models.Result, 0, len(names))

	for _, name := range names {
		result := f.FetchOne(ctx, name)
		if result.Err != nil {
			logger.Error("Fetch failed", "source", name, "error", result.Err)
		}
		results = append(results, result)
	}

	return results
}
