// Package dataset loads the video game sales hierarchy that the treemap draws.
//
// # Overview
//
// The dataset is a single JSON document fetched from a fixed URL ([DefaultURL]).
// Its root is a group whose children are platform groups; each platform group
// holds the best-selling titles as leaves:
//
//	{
//	  "name": "Video Game Sales Data Top 100",
//	  "children": [
//	    {"name": "Wii", "children": [
//	      {"name": "Wii Sports", "category": "Wii", "value": "82.53"}
//	    ]}
//	  ]
//	}
//
// Leaf values arrive as numeric strings in the published file; [Decode] accepts
// both strings and JSON numbers.
//
// # Fetching
//
// A [Fetcher] performs exactly one GET per call and never retries. The outcome is
// always a [Result]: either a loaded root or the reason it failed. Nothing is
// cached between runs.
//
//	f := dataset.NewFetcher(dataset.WithLogger(logger))
//	res := f.Fetch(ctx)
//	if !res.OK() {
//	    return res.Err
//	}
//
// [Fetcher.FetchAsync] runs the same request in the background and hands the
// result to a callback, which is how the HTTP server publishes the dataset.
//
// # Selection
//
// [Select] narrows the hierarchy with a JSONPath expression before layout:
//
//	wii, err := dataset.Select(root, "$.children[?(@.name == 'Wii')]")
package dataset
