package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern = regexp.MustCompile(`<[^>]+>`)
	urlPattern = regexp.MustCompile(`https?://[^\s\p{Z}]+`)
)

// MakeID derives the stable identifier of a media item from its platform and url.
// The format is the hex encoded SHA-256 of "platform|url" and is part of the
// persisted compatibility surface: changing it orphans every stored row.
func MakeID(platform Platform, url string) string {
	return sha256Hex(string(platform) + "|" + url)
}

// ContentHash fingerprints the visible content of an item. It is a change signal, not a key.
func ContentHash(title, summary string) string {
	return sha256Hex(Truncate(title, CONTENT_HASH_MAX_RUNE) + "||" + Truncate(summary, CONTENT_HASH_MAX_RUNE))
}

// CleanText decodes HTML entities, strips tags and bare URLs and collapses whitespace
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	t := html.UnescapeString(s)
	t = tagPattern.ReplaceAllString(t, " ")
	t = urlPattern.ReplaceAllString(t, " ")
	return strings.Join(strings.Fields(t), " ")
}

// Truncate returns at most n runes of s
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
