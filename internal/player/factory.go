package player

import (
	"github.com/PizzaHomicide/hotaru/internal/config"
	"github.com/PizzaHomicide/hotaru/internal/log"
)

// NewBackendFactory returns the factory the Manager uses to pick a backend per
// source: embedded player URLs go to the browser, everything else to mpv
func NewBackendFactory(cfg *config.Config) BackendFactory {
	return func(source Source) Backend {
		if IsEmbedURL(source.URL) {
			log.Info("Using embedded player backend", "url", source.URL)
			return NewEmbedBackend()
		}
		return NewMPVBackend(cfg)
	}
}
