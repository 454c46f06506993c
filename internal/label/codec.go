package label

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownLabel is returned when encoding a tag the codec was not fitted on.
	ErrUnknownLabel = errors.New("unknown label")
	// ErrUnknownCode is returned when decoding a code outside the fitted range.
	ErrUnknownCode = errors.New("unknown code")
)

// Codec maps intent tags to small integer codes and back. Codes are assigned
// over the sorted set of distinct tags, so a given tag set always produces the
// same mapping. The codec must stay in lockstep with the classifier trained
// against it; they are persisted and loaded together as one bundle.
type Codec struct {
	Classes []string `json:"classes"`

	index map[string]int
}

// Fit builds a codec from the training tags. Duplicates are collapsed.
func Fit(tags []string) *Codec {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}

	classes := make([]string, 0, len(set))
	for t := range set {
		classes = append(classes, t)
	}
	sort.Strings(classes)

	c := &Codec{Classes: classes}
	c.buildIndex()
	return c
}

func (c *Codec) buildIndex() {
	c.index = make(map[string]int, len(c.Classes))
	for i, tag := range c.Classes {
		c.index[tag] = i
	}
}

// Encode returns the integer code for a tag.
func (c *Codec) Encode(tag string) (int, error) {
	code, ok := c.index[tag]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, tag)
	}
	return code, nil
}

// Decode returns the tag for an integer code.
func (c *Codec) Decode(code int) (string, error) {
	if code < 0 || code >= len(c.Classes) {
		return "", fmt.Errorf("%w: %d", ErrUnknownCode, code)
	}
	return c.Classes[code], nil
}

// Len is the number of distinct classes.
func (c *Codec) Len() int {
	return len(c.Classes)
}

// UnmarshalJSON rebuilds the tag index after loading from disk.
func (c *Codec) UnmarshalJSON(data []byte) error {
	type alias Codec
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	c.Classes = a.Classes
	c.buildIndex()
	return nil
}
