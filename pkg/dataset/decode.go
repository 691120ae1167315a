package dataset

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/treemap/pkg/errors"
)

// maxBodySize caps the dataset document; the published file is about 10 KB.
const maxBodySize = 32 << 20

// UnmarshalJSON decodes a node, accepting the value field either as a JSON
// number or as a numeric string.
func (n *Node) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name     string          `json:"name"`
		Category string          `json:"category"`
		Value    json.RawMessage `json:"value"`
		Children []*Node         `json:"children"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	for i, c := range wire.Children {
		if c == nil {
			return errors.New(errors.ErrCodeInvalidDataset, "node %q: child %d is null", wire.Name, i)
		}
	}
	v, err := parseValue(wire.Value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDecode, err, "node %q", wire.Name)
	}
	*n = Node{Name: wire.Name, Category: wire.Category, Value: v, Children: wire.Children}
	return nil
}

func parseValue(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
	}
	return strconv.ParseFloat(s, 64)
}

// Decode reads a dataset document from r and validates its shape.
func Decode(r io.Reader) (*Node, error) {
	var root Node
	dec := json.NewDecoder(io.LimitReader(r, maxBodySize))
	if err := dec.Decode(&root); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode dataset")
	}
	if err := Validate(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// DecodeBytes is [Decode] over an in-memory document.
func DecodeBytes(data []byte) (*Node, error) {
	return Decode(bytes.NewReader(data))
}
