package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/morikuni/failure/v2"

	"sdofetch/internal/catalog"
	"sdofetch/internal/logger"
)

// FetchHelioviewer requests a screenshot of the latest available
// observation from the Helioviewer API and downloads the rendered image.
func (f *Fetcher) FetchHelioviewer(ctx context.Context, src catalog.Source) (*FetchResult, error) {
	date, observation := f.latestAvailableDate(ctx)

	screenshotURL := f.cfg.HelioviewerBaseURL + "takeScreenshot/"
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"date":        date,
			"imageScale":  strconv.FormatFloat(f.cfg.ImageScale, 'f', -1, 64),
			"layers":      fmt.Sprintf("[SDO,%d,1,100]", src.SourceID),
			"eventLabels": "false",
			"scale":       "true",
			"scaleType":   "earth",
			"scaleX":      "0",
			"scaleY":      "0",
			"width":       "1024",
			"height":      "1024",
			"display":     "false",
			"watermark":   "false",
		}).
		Get(screenshotURL)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(NetworkFailure),
			failure.Context{"url": screenshotURL},
		)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, failure.New(RemoteStatus,
			failure.Message("Helioviewer screenshot request returned non-success status"),
			failure.Context{
				"url":    screenshotURL,
				"status": fmt.Sprintf("%d", resp.StatusCode()),
			},
		)
	}

	var shot struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body(), &shot); err != nil {
		return nil, fmt.Errorf("failed to parse screenshot response: %w", err)
	}
	if shot.URL == "" {
		return nil, failure.New(RemoteStatus,
			failure.Message("Helioviewer screenshot response carried no image URL"),
			failure.Context{"url": screenshotURL},
		)
	}

	imageURL := resolveURL(f.cfg.HelioviewerBaseURL, shot.URL)
	logger.Debug("Downloading Helioviewer screenshot", "url", imageURL)

	imgResp, err := f.client.R().
		SetContext(ctx).
		Get(imageURL)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(NetworkFailure),
			failure.Context{"url": imageURL},
		)
	}

	if imgResp.StatusCode() != http.StatusOK {
		return nil, failure.New(RemoteStatus,
			failure.Message("Helioviewer image download returned non-success status"),
			failure.Context{
				"url":    imageURL,
				"status": fmt.Sprintf("%d", imgResp.StatusCode()),
			},
		)
	}

	return &FetchResult{
		Payload:         imgResp.Body(),
		URL:             imageURL,
		Method:          "helioviewer",
		ObservationDate: observation,
		RequestedDate:   date,
	}, nil
}

// LatestTimestamp queries getDataSources for the newest available SDO/AIA
// observation time. The response is a nested map of the form
// {"SDO": {"AIA": {"304": {"sourceId": 18, "end": "..."}}}}.
func (f *Fetcher) LatestTimestamp(ctx context.Context) (string, error) {
	sourcesURL := f.cfg.HelioviewerBaseURL + "getDataSources/"
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(sourcesURL)
	if err != nil {
		return "", failure.Wrap(err, failure.WithCode(NetworkFailure),
			failure.Context{"url": sourcesURL},
		)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", failure.New(RemoteStatus,
			failure.Message("Helioviewer data source listing returned non-success status"),
			failure.Context{
				"url":    sourcesURL,
				"status": fmt.Sprintf("%d", resp.StatusCode()),
			},
		)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return "", fmt.Errorf("failed to parse data sources: %w", err)
	}

	obs, ok := data["SDO"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("observatory not found: SDO")
	}

	inst, ok := obs["AIA"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("instrument not found: AIA")
	}

	// Take the newest end date across all AIA measurements
	var latest string
	for _, measData := range inst {
		meas, ok := measData.(map[string]interface{})
		if !ok {
			continue
		}
		if end, ok := meas["end"].(string); ok && end > latest {
			latest = end
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no observation end date for SDO/AIA")
	}

	return latest, nil
}

// latestAvailableDate returns the date to request a screenshot for,
// falling back to 30 minutes ago when the API cannot be queried.
// observation is the known observation end time and is empty in the
// fallback case, where no observation is confirmed for the date.
func (f *Fetcher) latestAvailableDate(ctx context.Context) (date, observation string) {
	ts, err := f.LatestTimestamp(ctx)
	if err != nil {
		fallback := time.Now().UTC().Add(-30 * time.Minute).Format("2006-01-02T15:04:05.000Z")
		logger.Warn("Could not determine latest observation date, using fallback",
			"error", err, "date", fallback)
		return fallback, ""
	}
	return ts, ts
}

// resolveURL joins a possibly relative image URL with the API origin.
func resolveURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	u, err := url.Parse(base)
	if err != nil {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return u.Scheme + "://" + u.Host + ref
}
