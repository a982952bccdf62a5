package registry

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
)

// AllPlatforms is the blacklist key that applies to every platform
const AllPlatforms = "*"

// BlacklistRegistry defines the interface for blacklist operations
//
//go:generate mockgen -source=blacklist.go -destination=../mocks/blacklist_registry.go -package=mocks -mock_names=BlacklistRegistry=MockBlacklistRegistry
type BlacklistRegistry interface {
	// IsBlacklisted checks if a domain (or one of its parents) is blacklisted for a platform
	IsBlacklisted(platform domain.Platform, host string) bool

	// IsURLBlacklisted checks if the host of a URL is blacklisted for a platform
	IsURLBlacklisted(platform domain.Platform, rawURL string) bool
}

// BlacklistData represents the structure of the blacklist.json file
// Key format: platform (or "*") -> list of domains
type BlacklistData map[string][]string

// blacklistRegistry is the internal implementation of BlacklistRegistry interface
type blacklistRegistry struct {
	// Fast lookup map: "platform:domain" -> true
	domains map[string]bool
}

// NewBlacklistRegistry builds a blacklist from already parsed data
func NewBlacklistRegistry(data BlacklistData) BlacklistRegistry {
	bl := &blacklistRegistry{
		domains: make(map[string]bool),
	}

	for platform, hosts := range data {
		normalizedPlatform := strings.ToLower(strings.TrimSpace(platform))
		for _, host := range hosts {
			normalizedHost := normalizeHost(host)
			if normalizedHost == "" {
				continue
			}
			bl.domains[blacklistKey(normalizedPlatform, normalizedHost)] = true
		}
	}

	return bl
}

// BlacklistRegistryLoader defines the interface for loading blacklists from files
//
//go:generate mockgen -source=blacklist.go -destination=../mocks/blacklist_registry.go -package=mocks -mock_names=BlacklistRegistryLoader=MockBlacklistRegistryLoader
type BlacklistRegistryLoader interface {
	// Load loads the blacklist from a JSON file
	Load(filePath string) (BlacklistRegistry, error)
}

type blacklistRegistryLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewBlacklistRegistryLoader creates a new BlacklistRegistryLoader with injected dependencies
func NewBlacklistRegistryLoader(fs adapter.FileSystem, json adapter.JSON) BlacklistRegistryLoader {
	return &blacklistRegistryLoader{
		fs:   fs,
		json: json,
	}
}

// Load loads the blacklist registry from a JSON file. An empty path yields an empty blacklist.
func (l *blacklistRegistryLoader) Load(filePath string) (BlacklistRegistry, error) {
	if filePath == "" {
		return NewBlacklistRegistry(nil), nil
	}

	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read blacklist file: %w", err)
	}

	var blacklistData BlacklistData
	if err := l.json.Unmarshal(data, &blacklistData); err != nil {
		return nil, fmt.Errorf("failed to parse blacklist JSON: %w", err)
	}

	return NewBlacklistRegistry(blacklistData), nil
}

// IsBlacklisted checks if a domain (or one of its parents) is blacklisted for a platform
func (b *blacklistRegistry) IsBlacklisted(platform domain.Platform, host string) bool {
	if b == nil || len(b.domains) == 0 {
		return false
	}

	d := normalizeHost(host)
	if d == "" {
		return false
	}
	p := strings.ToLower(string(platform))

	for {
		if b.domains[blacklistKey(p, d)] || b.domains[blacklistKey(AllPlatforms, d)] {
			return true
		}
		i := strings.Index(d, ".")
		if i < 0 {
			return false
		}
		d = d[i+1:]
	}
}

// IsURLBlacklisted checks if the host of a URL is blacklisted for a platform
func (b *blacklistRegistry) IsURLBlacklisted(platform domain.Platform, rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return b.IsBlacklisted(platform, u.Hostname())
}

func blacklistKey(platform, host string) string {
	return platform + ":" + host
}
