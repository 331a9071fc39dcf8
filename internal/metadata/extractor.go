// Package metadata reads Lightroom camera-raw settings from image files and
// maps them onto models.Adjustments.
package metadata

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/kartoza/presetify/internal/models"
	"github.com/kartoza/presetify/internal/tonecurve"
	"github.com/sirupsen/logrus"
)

// Reader returns the flat tag mapping for an image file
type Reader interface {
	ReadTags(ctx context.Context, path string) (Tags, error)
}

// Extractor turns image files into Adjustments
type Extractor struct {
	reader Reader
	log    logrus.FieldLogger
}

// NewExtractor creates an extractor backed by reader
func NewExtractor(reader Reader) *Extractor {
	return &Extractor{reader: reader, log: logrus.StandardLogger()}
}

// Extract reads the adjustments stored in the image at path. It never fails:
// if the reader errors or finds nothing, the returned record has every field
// unset and the problem is logged.
func (e *Extractor) Extract(ctx context.Context, path string) *models.Adjustments {
	log := e.log.WithField("path", path)

	tags, err := e.reader.ReadTags(ctx, path)
	if err != nil {
		log.WithError(err).Warn("Error extracting metadata")
		return models.NewAdjustments(path)
	}
	if len(tags) == 0 {
		log.Info("No metadata found")
		return models.NewAdjustments(path)
	}

	adj := fromTags(path, tags, log)
	log.WithField("values", adj.Count()).Debug("Extracted adjustments")
	return adj
}

// FromTags maps a flat tag mapping onto a new Adjustments record. Tags that
// are missing stay unset; tags whose value cannot be coerced are skipped.
func FromTags(source string, tags Tags) *models.Adjustments {
	return fromTags(source, tags, logrus.WithField("path", source))
}

func fromTags(source string, tags Tags, log logrus.FieldLogger) *models.Adjustments {
	adj := models.NewAdjustments(source)

	for _, field := range models.ScalarFields {
		v, ok := tags.Lookup(field.Tag)
		if !ok {
			continue
		}
		if field.Float != nil {
			f, ok := toFloat(v)
			if !ok {
				log.WithField("tag", field.Tag).Debugf("Skipping malformed value %v", v)
				continue
			}
			*field.Float(adj) = models.Float(f)
			continue
		}
		n, ok := toInt(v)
		if !ok {
			log.WithField("tag", field.Tag).Debugf("Skipping malformed value %v", v)
			continue
		}
		*field.Int(adj) = models.Int(n)
	}

	if v, ok := tags.Lookup(models.TagToneCurve); ok {
		adj.ToneCurve = tonecurve.Decode(v)
		if adj.ToneCurve == nil {
			log.WithField("tag", models.TagToneCurve).Debugf("Discarding malformed tone curve %v", v)
		}
	}
	for _, tag := range []string{models.TagToneCurveRed, models.TagToneCurveGreen, models.TagToneCurveBlue} {
		if v, ok := tags.Lookup(tag); ok {
			*adj.ChannelCurve(tag) = &models.RawCurve{Value: rawString(v)}
		}
	}

	for _, band := range models.ColorBands() {
		for _, kind := range models.BandKinds() {
			tag := kind.TagName(band)
			v, ok := tags.Lookup(tag)
			if !ok {
				continue
			}
			n, ok := toInt(v)
			if !ok {
				log.WithField("tag", tag).Debugf("Skipping malformed value %v", v)
				continue
			}
			adj.Bands(kind)[band] = n
		}
	}

	return adj
}

// IsSupportedImage reports whether path has a JPEG extension
func IsSupportedImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}
