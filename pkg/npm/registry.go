package npm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	errs "buntab/pkg/errors"
)

// metadataAccept requests the abbreviated install metadata document, which
// is much smaller than the full packument but still carries dist-tags and
// the full version map.
const metadataAccept = "application/vnd.npm.install-v1+json"

// Metadata holds the version information for a published package.
// DistTags preserves response order; Versions preserves publish order.
type Metadata struct {
	Name     string
	DistTags []Tag
	Versions []string
}

// Tag is a named pointer (e.g. "latest") to a published version.
type Tag struct {
	Name    string
	Version string
}

// Metadata fetches version information for a fully-qualified package name.
// Scoped names ("@types/node") are passed through verbatim, matching the
// registry's URL convention.
//
// A response without a dist-tags object (package not found, unexpected
// shape) is reported as a PACKAGE_NOT_FOUND error; callers at the
// suggestion boundary degrade it to an empty result.
func (c *Client) Metadata(ctx context.Context, name string) (*Metadata, error) {
	u := fmt.Sprintf("%s/%s", c.registry, name)
	raw, err := c.getRaw(ctx, u, map[string]string{"Accept": metadataAccept})
	if err != nil {
		return nil, err
	}

	tags, ok := fieldEntries(raw, "dist-tags")
	if !ok {
		return nil, errs.New(errs.ErrCodePackageNotFound, "no dist-tags in metadata for %s", name)
	}
	versions, _ := fieldEntries(raw, "versions")

	meta := &Metadata{Name: name}
	for _, t := range tags {
		meta.DistTags = append(meta.DistTags, Tag{Name: t.Key, Version: t.Value})
	}
	for _, v := range versions {
		meta.Versions = append(meta.Versions, v.Key)
	}
	return meta, nil
}

// entry is one member of a JSON object, in document order.
// Value is set only when the member value is a JSON string.
type entry struct {
	Key   string
	Value string
}

// fieldEntries returns the members of the top-level object field, preserving
// document order. encoding/json maps would lose ordering, and both dist-tag
// order and version publish order are meaningful here, so the object is
// walked at token level instead.
//
// Returns ok=false when the document is not an object, the field is absent,
// or the field's value is not an object.
func fieldEntries(data []byte, field string) ([]entry, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, false
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, _ := keyTok.(string)
		if key != field {
			if err := skipValue(dec); err != nil {
				return nil, false
			}
			continue
		}

		open, err := dec.Token()
		if err != nil {
			return nil, false
		}
		if d, ok := open.(json.Delim); !ok || d != '{' {
			return nil, false
		}

		entries := []entry{}
		for dec.More() {
			kTok, err := dec.Token()
			if err != nil {
				return nil, false
			}
			k, _ := kTok.(string)
			v, isString, err := stringValue(dec)
			if err != nil {
				return nil, false
			}
			e := entry{Key: k}
			if isString {
				e.Value = v
			}
			entries = append(entries, e)
		}
		return entries, true
	}
	return nil, false
}

// stringValue consumes one JSON value. If the value is a string it is
// returned; composite values are consumed and discarded.
func stringValue(dec *json.Decoder) (string, bool, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", false, err
	}
	switch v := tok.(type) {
	case string:
		return v, true, nil
	case json.Delim:
		return "", false, finishValue(dec, v)
	default:
		return "", false, nil
	}
}

// skipValue consumes one JSON value of any kind.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); ok {
		return finishValue(dec, d)
	}
	return nil
}

// finishValue consumes the remainder of a composite value whose opening
// delimiter has already been read.
func finishValue(dec *json.Decoder, open json.Delim) error {
	for dec.More() {
		if open == '{' {
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	_, err := dec.Token()
	return err
}
