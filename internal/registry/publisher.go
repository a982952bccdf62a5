package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
)

// PublisherRegistry defines the interface for publisher operations
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher_registry.go -package=mocks -mock_names=PublisherRegistry=MockPublisherRegistry
type PublisherRegistry interface {
	// LookupPublisher resolves a publisher name from a host domain
	LookupPublisher(host string) string
}

// DefaultPublishers maps well-known Indonesian outlet domains to publisher names
var DefaultPublishers = map[string]string{
	"kompas.com":          "kompas",
	"nasional.kompas.com": "kompas",
	"tempo.co":            "tempo",
	"nasional.tempo.co":   "tempo",
	"antaranews.com":      "antara",
	"mediaindonesia.com":  "mediaindonesia",
	"detik.com":           "detik",
	"cnnindonesia.com":    "cnnindonesia",
	"cnbcindonesia.com":   "cnbcindonesia",
}

// PublisherRegistryData represents the structure of the registry JSON file
type PublisherRegistryData struct {
	Version int `json:"version"`
	// Publishers maps a domain to a publisher name
	Publishers map[string]string `json:"publishers"`
}

// publisherRegistry is the internal implementation of PublisherRegistry interface
type publisherRegistry struct {
	exact map[string]string
	// suffixes holds the known domains sorted longest first
	suffixes []string
}

// NewPublisherRegistry creates a registry from the defaults extended by overrides
func NewPublisherRegistry(overrides map[string]string) PublisherRegistry {
	r := &publisherRegistry{
		exact: make(map[string]string, len(DefaultPublishers)+len(overrides)),
	}
	for d, name := range DefaultPublishers {
		r.exact[d] = name
	}
	for d, name := range overrides {
		normalized := normalizeHost(d)
		if normalized == "" || strings.TrimSpace(name) == "" {
			continue
		}
		r.exact[normalized] = strings.TrimSpace(name)
	}

	r.suffixes = make([]string, 0, len(r.exact))
	for d := range r.exact {
		r.suffixes = append(r.suffixes, d)
	}
	sort.Slice(r.suffixes, func(i, j int) bool {
		if len(r.suffixes[i]) != len(r.suffixes[j]) {
			return len(r.suffixes[i]) > len(r.suffixes[j])
		}
		return r.suffixes[i] < r.suffixes[j]
	})

	return r
}

// LookupPublisher resolves a publisher name from a host domain.
// Resolution order: exact match, longest known suffix, second-to-last label, the domain itself.
func (r *publisherRegistry) LookupPublisher(host string) string {
	d := normalizeHost(host)
	if d == "" {
		return domain.UNKNOWN_PUBLISHER
	}
	if r == nil {
		return fallbackPublisher(d)
	}

	if name, ok := r.exact[d]; ok {
		return name
	}
	for _, suffix := range r.suffixes {
		if strings.HasSuffix(d, "."+suffix) {
			return r.exact[suffix]
		}
	}

	return fallbackPublisher(d)
}

// fallbackPublisher returns the second-to-last label of a dotted domain
func fallbackPublisher(d string) string {
	labels := strings.Split(d, ".")
	if len(labels) < 2 {
		return d
	}
	return labels[len(labels)-2]
}

func normalizeHost(host string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
}

// PublisherRegistryLoader defines the interface for loading publisher registries from files
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher_registry.go -package=mocks -mock_names=PublisherRegistryLoader=MockPublisherRegistryLoader
type PublisherRegistryLoader interface {
	// Load loads the publisher registry from a JSON file, merged over the defaults
	Load(filePath string) (PublisherRegistry, error)
}

// publisherRegistryLoader is the internal implementation of PublisherRegistryLoader interface
type publisherRegistryLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewPublisherRegistryLoader creates a new PublisherRegistryLoader with injected dependencies
func NewPublisherRegistryLoader(fs adapter.FileSystem, json adapter.JSON) PublisherRegistryLoader {
	return &publisherRegistryLoader{
		fs:   fs,
		json: json,
	}
}

// Load loads the publisher registry from a JSON file
func (l *publisherRegistryLoader) Load(filePath string) (PublisherRegistry, error) {
	if filePath == "" {
		return NewPublisherRegistry(nil), nil
	}

	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	var registryData PublisherRegistryData
	if err := l.json.Unmarshal(data, &registryData); err != nil {
		return nil, fmt.Errorf("failed to parse registry JSON: %w", err)
	}

	return NewPublisherRegistry(registryData.Publishers), nil
}
