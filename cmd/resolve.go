package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/kartoza/presetify/internal/fetcher"
	"github.com/kartoza/presetify/internal/metadata"
	"github.com/sirupsen/logrus"
)

var (
	errNoImages          = errors.New("no valid image files found")
	errNoSupportedImages = errors.New("no supported image files found (only JPEG supported)")
)

// splitArgs separates URLs from local paths, expanding glob patterns for
// paths that do not exist.
func splitArgs(args []string) (paths, urls []string) {
	for _, arg := range args {
		if fetcher.IsURL(arg) {
			urls = append(urls, arg)
			continue
		}
		if isFile(arg) {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, expandGlob(arg)...)
	}
	return paths, urls
}

// expandGlob matches the base name of pattern inside its directory, or the
// working directory when that does not exist.
func expandGlob(pattern string) []string {
	dir := filepath.Dir(pattern)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = "."
	}

	matches, err := filepath.Glob(filepath.Join(dir, filepath.Base(pattern)))
	if err != nil {
		logrus.WithError(err).WithField("pattern", pattern).Warn("Invalid glob pattern")
		return nil
	}
	sort.Strings(matches)

	var files []string
	for _, m := range matches {
		if isFile(m) {
			files = append(files, m)
		}
	}
	return files
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// fetchURLs downloads each URL, reporting progress to out
func fetchURLs(ctx context.Context, f *fetcher.Fetcher, urls []string, out io.Writer) []string {
	if len(urls) == 0 {
		return nil
	}

	fmt.Fprintf(out, "Downloading %d images from URLs...\n", len(urls))
	return f.FetchAll(ctx, urls, func(url, path string, err error) {
		switch {
		case err != nil:
			fmt.Fprintf(out, "    ✗ Failed to download: %v\n", err)
		case path != "":
			fmt.Fprintf(out, "    ✓ Saved to %s\n", path)
		default:
			fmt.Fprintf(out, "  Fetching: %s\n", url)
		}
	})
}

// filterSupported keeps the JPEG images
func filterSupported(paths []string) []string {
	var images []string
	for _, p := range paths {
		if metadata.IsSupportedImage(p) {
			images = append(images, p)
		}
	}
	return images
}

// resolveImages turns command line arguments into the JPEG images to work on
func resolveImages(ctx context.Context, args []string, f *fetcher.Fetcher, out io.Writer) ([]string, error) {
	paths, urls := splitArgs(args)
	paths = append(paths, fetchURLs(ctx, f, urls, out)...)

	if len(paths) == 0 {
		return nil, errNoImages
	}
	images := filterSupported(paths)
	if len(images) == 0 {
		return nil, errNoSupportedImages
	}
	return images, nil
}

// resolveArgs resolves the root command arguments
func resolveArgs(ctx context.Context, args []string, f *fetcher.Fetcher) ([]string, error) {
	images, err := resolveImages(ctx, args, f, os.Stdout)
	if err != nil {
		return nil, err
	}
	fmt.Printf("\nFound %d image(s) to process\n", len(images))
	return images, nil
}
