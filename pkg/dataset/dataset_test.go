package dataset_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/dataset/datasettest"
	"github.com/matzehuels/treemap/pkg/errors"
)

func TestDecodeSample(t *testing.T) {
	root := datasettest.Root(t)

	assert.Equal(t, "Video Game Sales Data Top 100", root.Name)
	assert.Equal(t, []string{"Wii", "NES", "GB"}, root.Groups())
	require.Len(t, root.Leaves(), 7)

	first := root.Children[0].Children[0]
	assert.Equal(t, "Wii Sports", first.Name)
	assert.Equal(t, "Wii", first.Category)
	assert.InDelta(t, 82.53, first.Value, 1e-9)

	// numeric (non-string) values decode too
	assert.InDelta(t, 28.31, root.Children[1].Children[1].Value, 1e-9)
	assert.InDelta(t, datasettest.SampleTotal, root.Total(), 1e-9)
}

func TestDecodeValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want float64
		code errors.Code
	}{
		{"string", `{"name":"r","children":[{"name":"a","value":"1.5"}]}`, 1.5, ""},
		{"number", `{"name":"r","children":[{"name":"a","value":2}]}`, 2, ""},
		{"padded string", `{"name":"r","children":[{"name":"a","value":" 3 "}]}`, 3, ""},
		{"null", `{"name":"r","children":[{"name":"a","value":null}]}`, 0, ""},
		{"missing", `{"name":"r","children":[{"name":"a"}]}`, 0, ""},
		{"not a number", `{"name":"r","children":[{"name":"a","value":"lots"}]}`, 0, errors.ErrCodeDecode},
		{"negative", `{"name":"r","children":[{"name":"a","value":"-1"}]}`, 0, errors.ErrCodeInvalidDataset},
		{"truncated", `{"name":"r","children":[`, 0, errors.ErrCodeDecode},
		{"no children", `{"name":"r"}`, 0, errors.ErrCodeEmptyDataset},
		{"null group", `{"name":"r","children":[null]}`, 0, errors.ErrCodeInvalidDataset},
		{"null record", `{"name":"r","children":[{"name":"Wii","children":[null]}]}`, 0, errors.ErrCodeInvalidDataset},
		{"null among records", `{"name":"r","children":[{"name":"Wii","children":[{"name":"a","value":1},null]}]}`, 0, errors.ErrCodeInvalidDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := dataset.Decode(strings.NewReader(tt.doc))
			if tt.code != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.code), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, root.Children[0].Value)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.True(t, errors.Is(dataset.Validate(nil), errors.ErrCodeEmptyDataset))
	assert.True(t, errors.Is(dataset.Validate(&dataset.Node{Name: "r"}), errors.ErrCodeEmptyDataset))

	nan := &dataset.Node{Name: "r", Children: []*dataset.Node{{Name: "a", Value: math.NaN()}}}
	assert.True(t, errors.Is(dataset.Validate(nan), errors.ErrCodeInvalidDataset))

	inf := &dataset.Node{Name: "r", Children: []*dataset.Node{{Name: "a", Value: math.Inf(1)}}}
	assert.True(t, errors.Is(dataset.Validate(inf), errors.ErrCodeInvalidDataset))

	holey := &dataset.Node{Name: "r", Children: []*dataset.Node{
		{Name: "Wii", Children: []*dataset.Node{{Name: "a", Value: 1}, nil}},
	}}
	assert.True(t, errors.Is(dataset.Validate(holey), errors.ErrCodeInvalidDataset))
	assert.Equal(t, 1.0, holey.Total())
	assert.Len(t, holey.Leaves(), 1)
	assert.Equal(t, []string{"Wii"}, (&dataset.Node{Children: []*dataset.Node{nil, {Name: "Wii"}}}).Groups())

	// an empty group is a leaf with value 0, which is allowed
	empty := &dataset.Node{Name: "r", Children: []*dataset.Node{{Name: "g"}}}
	assert.NoError(t, dataset.Validate(empty))
}

func TestSummarize(t *testing.T) {
	s := dataset.Summarize(datasettest.Root(t))

	assert.Equal(t, 3, s.Groups)
	assert.Equal(t, 7, s.Leaves)
	assert.InDelta(t, datasettest.SampleTotal, s.Total, 1e-9)
	require.Len(t, s.PerGroup, 3)
	assert.Equal(t, "NES", s.PerGroup[1].Name)
	assert.Equal(t, 2, s.PerGroup[1].Leaves)
	assert.InDelta(t, 40.24+28.31, s.PerGroup[1].Total, 1e-9)
}

func TestGenerate(t *testing.T) {
	root := datasettest.Generate(6, 100)

	require.NoError(t, dataset.Validate(root))
	s := dataset.Summarize(root)
	assert.Equal(t, 6, s.Groups)
	assert.Equal(t, 100, s.Leaves)
}
