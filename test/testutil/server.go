// Package testutil provides a fake alt:V CDN and config helpers for tests.
package testutil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/cperrin88/altvsync/pkg/config"
	"github.com/cperrin88/altvsync/pkg/digest"
)

const manifestFile = "update.json"

type manifestDoc struct {
	version string
	hashes  map[string]string
}

// CDN is an httptest server laid out like the alt:V CDN. The update.json of every
// manifest directory is generated from the files registered below it.
type CDN struct {
	Server *httptest.Server
	URL    string

	mu        sync.Mutex
	manifests map[string]*manifestDoc // manifest directory -> document
	files     map[string][]byte       // URL path -> body
	fetches   map[string]int          // URL path -> artifact downloads
}

// NewCDN starts an empty fake CDN that is closed when the test ends.
func NewCDN(t *testing.T) *CDN {
	t.Helper()
	c := &CDN{
		manifests: make(map[string]*manifestDoc),
		files:     make(map[string][]byte),
		fetches:   make(map[string]int),
	}
	c.Server = httptest.NewServer(http.HandlerFunc(c.serve))
	c.URL = c.Server.URL
	t.Cleanup(c.Server.Close)
	return c
}

func (c *CDN) serve(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path.Base(r.URL.Path) == manifestFile {
		doc, ok := c.manifests[path.Dir(r.URL.Path)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		data, err := json.Marshal(map[string]interface{}{
			"latestBuildNumber": 1,
			"version":           doc.version,
			"hashList":          doc.hashes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
		return
	}

	body, ok := c.files[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	c.fetches[r.URL.Path]++
	_, _ = w.Write(body)
}

func (c *CDN) manifest(dir string) *manifestDoc {
	doc, ok := c.manifests[dir]
	if !ok {
		doc = &manifestDoc{version: "1.0", hashes: make(map[string]string)}
		c.manifests[dir] = doc
	}
	return doc
}

// AddFile publishes body at urlPath and its digest under key in the manifest of manifestDir.
func (c *CDN) AddFile(manifestDir, key, urlPath string, body []byte) {
	sum, err := digest.FromReader(bytes.NewReader(body))
	if err != nil {
		panic(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.manifest(manifestDir).hashes[key] = sum
	c.files[urlPath] = body
}

// AddComponentFile publishes a platform build file, e.g. server/release/x64_linux/altv-server.
func (c *CDN) AddComponentFile(component, branch, platform, rel string, body []byte) {
	dir := "/" + path.Join(component, branch, platform)
	c.AddFile(dir, rel, dir+"/"+rel, body)
}

// AddDataFile publishes a data blob of branch, listed as data/<name> in the data manifest.
func (c *CDN) AddDataFile(branch, name string, body []byte) {
	dir := "/" + path.Join("data", branch)
	c.AddFile(dir, "data/"+name, dir+"/data/"+name, body)
}

// SetVersion sets the version reported by the manifest of manifestDir.
func (c *CDN) SetVersion(manifestDir, version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manifest(manifestDir).version = version
}

// RemoveFile makes urlPath answer 404 while its digest stays published.
func (c *CDN) RemoveFile(urlPath string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, urlPath)
}

// Fetches returns the number of artifact downloads served so far. Manifest requests are not counted.
func (c *CDN) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, count := range c.fetches {
		n += count
	}
	return n
}

// FetchCount returns how often urlPath was downloaded.
func (c *CDN) FetchCount(urlPath string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches[urlPath]
}

// ServerRelease publishes a release/linux server build with the four base data blobs.
func (c *CDN) ServerRelease() {
	c.AddComponentFile("server", "release", "x64_linux", "altv-server", []byte("server binary"))
	for _, name := range []string{"vehmodels.bin", "vehmods.bin", "clothes.bin", "pedmodels.bin"} {
		c.AddDataFile("release", name, []byte("data "+name))
	}
}

// WriteConfig saves cfg as config.json in dir, pointing it at the fake CDN, and returns its path.
func (c *CDN) WriteConfig(t *testing.T, dir string, cfg *config.Config) string {
	t.Helper()
	cfg.CDNURL = c.URL
	configPath := filepath.Join(dir, config.DefaultConfigPath)
	if err := cfg.SaveConfig(configPath); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}
