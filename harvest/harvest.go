// Package harvest fetches remote icons and converts them into local assets.
package harvest

import (
	"bytes"
	"context"
	"fmt"

	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/crawl"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Ensure Harvester implements eucatalog.IconHarvester at compile time.
var _ eucatalog.IconHarvester = (*Harvester)(nil)

// Harvester converts icons according to their format: vector icons are
// canonicalized, PNG icons are copied and other rasters are traced.
type Harvester struct {
	Fetcher       eucatalog.Fetcher
	Canonicalizer eucatalog.VectorCanonicalizer
	Tracer        eucatalog.RasterTracer
}

// Harvest fetches and converts one asset per unique source URL, in the
// order the URLs first appear in icons. Two distinct URLs writing the same
// output filename are an EDATA error.
func (h *Harvester) Harvest(ctx context.Context, icons []eucatalog.Icon, mode eucatalog.ExecutionMode) ([]eucatalog.IconAsset, error) {
	unique, err := dedupe(icons)
	if err != nil {
		return nil, err
	}
	return crawl.Execute(ctx, mode, unique, h.harvest)
}

func (h *Harvester) harvest(ctx context.Context, icon eucatalog.Icon) (eucatalog.IconAsset, error) {
	data, err := h.Fetcher.FetchBytes(ctx, icon.SourceURL)
	if err != nil {
		return eucatalog.IconAsset{}, fmt.Errorf("fetch icon %s: %w", icon.Name, err)
	}

	data, err = h.convert(icon, data)
	if err != nil {
		return eucatalog.IconAsset{}, fmt.Errorf("convert icon %s from %s: %w", icon.Name, icon.SourceURL, err)
	}
	return eucatalog.IconAsset{Icon: icon, Data: data}, nil
}

func (h *Harvester) convert(icon eucatalog.Icon, data []byte) ([]byte, error) {
	switch icon.Format {
	case eucatalog.IconVector:
		return h.Canonicalizer.Canonicalize(data)
	case eucatalog.IconRaster:
		if !bytes.HasPrefix(data, pngSignature) {
			return nil, eucatalog.Errorf(eucatalog.ECONVERSION, "not a PNG image")
		}
		return data, nil
	case eucatalog.IconTraced:
		return h.Tracer.Trace(data)
	default:
		return nil, eucatalog.Errorf(eucatalog.ECONVERSION, "unknown icon format %d", int(icon.Format))
	}
}

func dedupe(icons []eucatalog.Icon) ([]eucatalog.Icon, error) {
	byURL := make(map[string]bool, len(icons))
	byFile := make(map[string]string, len(icons))
	var unique []eucatalog.Icon
	for _, icon := range icons {
		if byURL[icon.SourceURL] {
			continue
		}
		if other, ok := byFile[icon.Filename]; ok {
			return nil, eucatalog.Errorf(eucatalog.EDATA, "icons %s and %s both write %s", other, icon.SourceURL, icon.Filename)
		}
		byURL[icon.SourceURL] = true
		byFile[icon.Filename] = icon.SourceURL
		unique = append(unique, icon)
	}
	return unique, nil
}
