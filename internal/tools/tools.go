// Package tools contains the tool implementations. Each file holds one
// tool: a small struct carrying its owned resources, static metadata,
// a declared input schema, and a Run method that degrades every
// internal failure into result content. Tools are peer leaves — none
// depends on another.
package tools

import (
	"time"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/execx"
	"github.com/mwozniczak/agenttools/internal/infra/geocode"
	"github.com/mwozniczak/agenttools/internal/infra/httpcache"
)

// Deps carries the shared infrastructure injected into tools that need it.
type Deps struct {
	Runner        execx.Runner
	Cache         *httpcache.Client
	Geocoder      *geocode.Client
	BraveInterval time.Duration
}

// RegisterAll registers every tool in this package on the registry.
func RegisterAll(r *tool.Registry, deps Deps) error {
	if deps.Runner == nil {
		deps.Runner = execx.System{}
	}
	if deps.Geocoder == nil {
		deps.Geocoder = geocode.NewClient()
	}
	if deps.BraveInterval <= 0 {
		deps.BraveInterval = time.Second
	}

	all := []tool.Tool{
		NewWordCounter(),
		NewTimeConverter(),
		NewCreateFolders(),
		NewDeleteFolders(),
		NewFileCreator(),
		NewFileContentReader(),
		NewFileEdit(),
		NewDiffEditor(),
		NewAptPackageManager(deps.Runner),
		NewAptCacheInfo(deps.Runner),
		NewUVPackageManager(deps.Runner),
		NewPyLinting(deps.Runner),
		NewQRCode(),
		NewWebBrowser(),
		NewWebScraper(),
		NewDuckDuckGoSearch(),
		NewWikipediaSearch(),
		NewBraveWebSearch(deps.BraveInterval),
		NewBraveLocalSearch(deps.BraveInterval),
		NewWeatherUSCurrent(deps.Geocoder),
		NewWeatherUSForecast(deps.Geocoder),
		NewWeatherUSAlerts(),
		NewOpenMeteoForecast(deps.Cache, deps.Geocoder),
		NewYouTubeTranscript(),
		NewYtb2Mp4Transcript(),
		NewDallEImage(),
	}

	for _, t := range all {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}
