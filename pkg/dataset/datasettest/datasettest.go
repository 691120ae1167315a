// Package datasettest provides fixtures and a fake dataset host for tests.
package datasettest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/matzehuels/treemap/pkg/dataset"
)

// Sample is a small document in the published format: three platforms, seven
// titles, values encoded as strings the way the real file does it.
const Sample = `{
  "name": "Video Game Sales Data Top 100",
  "children": [
    {
      "name": "Wii",
      "children": [
        {"name": "Wii Sports", "category": "Wii", "value": "82.53"},
        {"name": "Mario Kart Wii", "category": "Wii", "value": "35.52"},
        {"name": "Wii Sports Resort", "category": "Wii", "value": "32.77"}
      ]
    },
    {
      "name": "NES",
      "children": [
        {"name": "Super Mario Bros.", "category": "NES", "value": "40.24"},
        {"name": "Duck Hunt", "category": "NES", "value": 28.31}
      ]
    },
    {
      "name": "GB",
      "children": [
        {"name": "Pokemon Red/Pokemon Blue", "category": "GB", "value": "31.37"},
        {"name": "Tetris", "category": "GB", "value": "30.26"}
      ]
    }
  ]
}`

// SampleTotal is the sum of every leaf value in [Sample].
const SampleTotal = 82.53 + 35.52 + 32.77 + 40.24 + 28.31 + 31.37 + 30.26

// Root decodes [Sample].
func Root(t testing.TB) *dataset.Node {
	t.Helper()
	root, err := dataset.DecodeBytes([]byte(Sample))
	if err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	return root
}

// Generate builds a deterministic dataset with the given number of groups and
// leaves. Leaves are dealt round-robin across groups with distinct values.
func Generate(groups, leaves int) *dataset.Node {
	root := &dataset.Node{Name: fmt.Sprintf("Generated %dx%d", groups, leaves)}
	for g := range groups {
		root.Children = append(root.Children, &dataset.Node{Name: fmt.Sprintf("P%02d", g)})
	}
	for i := range leaves {
		g := root.Children[i%groups]
		g.Children = append(g.Children, &dataset.Node{
			Name:     fmt.Sprintf("Title %03d", i),
			Category: g.Name,
			Value:    float64(leaves-i) * 0.75,
		})
	}
	return root
}

// JSON encodes root.
func JSON(t testing.TB, root *dataset.Node) []byte {
	t.Helper()
	data, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("encode dataset: %v", err)
	}
	return data
}

// Client starts a server for h and returns a client that sends every request
// to it, whatever the request URL says.
func Client(t testing.TB, h http.Handler) *http.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	return &http.Client{Transport: rewrite{target: target, next: srv.Client().Transport}}
}

// Serve returns a client whose requests are answered with status and body.
func Serve(t testing.TB, status int, body []byte) *http.Client {
	t.Helper()
	return Client(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
}

type rewrite struct {
	target *url.URL
	next   http.RoundTripper
}

func (r rewrite) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = r.target.Scheme
	out.URL.Host = r.target.Host
	out.Host = r.target.Host
	return r.next.RoundTrip(out)
}
