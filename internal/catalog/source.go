package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// HTTPSource fetches provider definitions from a JSON endpoint.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates a source backed by the given endpoint. A nil client
// falls back to http.DefaultClient.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{URL: url, Client: http.DefaultClient}
}

// Definitions performs a GET against the endpoint and decodes the provider
// definition list.
func (s *HTTPSource) Definitions(ctx context.Context) ([]ProviderDefinition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build provider request")
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch provider definitions from %s", s.URL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("provider endpoint %s returned status %d", s.URL, resp.StatusCode)
	}

	var defs []ProviderDefinition
	if err := json.NewDecoder(resp.Body).Decode(&defs); err != nil {
		return nil, errors.Wrap(err, "failed to decode provider definitions")
	}
	return defs, nil
}

// DirSource reads provider definitions from *.json files in a directory.
// Each file holds either one definition or a list of them.
type DirSource struct {
	Dir string
}

// Definitions walks the directory and decodes every definition file.
func (s *DirSource) Definitions(_ context.Context) ([]ProviderDefinition, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read provider directory %s", s.Dir)
	}

	var defs []ProviderDefinition
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.Dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}

		var list []ProviderDefinition
		if err := json.Unmarshal(raw, &list); err == nil {
			defs = append(defs, list...)
			continue
		}
		var one ProviderDefinition
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s", path)
		}
		defs = append(defs, one)
	}
	return defs, nil
}
