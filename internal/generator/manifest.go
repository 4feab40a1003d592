package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

const (
	manifestFileName    = ".site-manifest.json"
	manifestFileVersion = 1
)

type buildManifest struct {
	Version     int                     `json:"version"`
	BuildID     string                  `json:"build_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Pages       map[string]manifestPage `json:"pages"`
}

type manifestPage struct {
	Route    string `json:"route"`
	Pattern  string `json:"pattern"`
	Output   string `json:"output"`
	Checksum string `json:"checksum"`
	Size     int    `json:"size"`
}

func newBuildManifest(buildID string, generatedAt time.Time) *buildManifest {
	return &buildManifest{
		Version:     manifestFileVersion,
		BuildID:     buildID,
		GeneratedAt: generatedAt,
		Pages:       map[string]manifestPage{},
	}
}

func (m *buildManifest) record(route, pattern, output string, content []byte) {
	m.Pages[route] = manifestPage{
		Route:    route,
		Pattern:  pattern,
		Output:   output,
		Checksum: checksum(content),
		Size:     len(content),
	}
}

func (m *buildManifest) encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("generator: encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

func checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
