// Package fetcher downloads remote images to temporary files so they can be
// processed like local ones.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TempPrefix is the name prefix of downloaded files
const TempPrefix = "presetify_"

// DefaultExtension is used when neither the response nor the URL names one
const DefaultExtension = ".jpg"

// contentTypes maps image MIME types to file extensions
var contentTypes = map[string]string{
	"image/jpeg":        ".jpg",
	"image/jpg":         ".jpg",
	"image/png":         ".png",
	"image/tiff":        ".tif",
	"image/x-adobe-dng": ".dng",
}

// Fetcher downloads images over HTTP and keeps track of the files it creates
type Fetcher struct {
	client  *http.Client
	tempDir string

	mu    sync.Mutex
	files []string
}

// New creates a fetcher whose requests time out after timeout (0 = none)
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// IsURL reports whether arg is an http or https URL
func IsURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// Fetch downloads rawURL into a new temporary file and returns its path.
// Redirects are followed; a non-2xx response is an error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	log := logrus.WithField("url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to fetch %s: HTTP %d", rawURL, resp.StatusCode)
	}

	ext := Extension(resp.Header.Get("Content-Type"), rawURL)
	out, err := os.CreateTemp(f.tempDir, TempPrefix+"*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	n, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to download %s: %w", rawURL, err)
	}

	f.mu.Lock()
	f.files = append(f.files, out.Name())
	f.mu.Unlock()

	log.WithFields(logrus.Fields{"path": out.Name(), "bytes": n}).Info("Fetched image")
	return out.Name(), nil
}

// Progress is called before each download with an empty path and nil error,
// then again with its outcome
type Progress func(url, path string, err error)

// FetchAll downloads each URL in order. Failures are logged and skipped;
// the paths of successful downloads are returned. progress may be nil.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string, progress Progress) []string {
	if progress == nil {
		progress = func(string, string, error) {}
	}

	var paths []string
	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		progress(u, "", nil)
		p, err := f.Fetch(ctx, u)
		if err != nil {
			logrus.WithError(err).WithField("url", u).Warn("Error fetching image")
			progress(u, "", err)
			continue
		}
		progress(u, p, nil)
		paths = append(paths, p)
	}
	return paths
}

// Cleanup removes every temporary file created by this fetcher
func (f *Fetcher) Cleanup() {
	f.mu.Lock()
	files := f.files
	f.files = nil
	f.mu.Unlock()

	for _, p := range files {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).WithField("path", p).Warn("Failed to remove temp file")
		}
	}
}

// Extension picks the file extension for a download: from the Content-Type
// header when it names a known image type, then from the URL path, then
// DefaultExtension.
func Extension(contentType, rawURL string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if ext, ok := contentTypes[strings.ToLower(mediaType)]; ok {
			return ext
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		if len(ext) > 1 && len(ext) <= 5 {
			return ext
		}
	}
	return DefaultExtension
}
