package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// Attach writes a sidecar file "{stem}.{key}" next to an existing
// record. Structured data is stored as indented JSON, everything else
// as raw text. A missing parent record is a hard failure: sidecars are
// derived artifacts and must never exist without their record.
func (s *Store) Attach(id, key string, data any) error {
	name, err := s.lookupMeta(id)
	if err != nil {
		return fmt.Errorf("attach %s to %s: %w", key, id, err)
	}

	payload, err := encodeSidecar(data)
	if err != nil {
		return fmt.Errorf("encode sidecar %s: %w", key, err)
	}

	target := strings.TrimSuffix(name, metaSuffix) + "." + key
	if err := s.writeFileAtomic(target, payload); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}

	s.logger.Debug("sidecar attached", "id", id, "key", key)
	return nil
}

// HasSidecar checks for "*_{id}.{key}" by pattern alone. It tolerates
// every failure by answering false, so callers can probe without
// resolving the parent record first.
func (s *Store) HasSidecar(id, key string) bool {
	matches, err := filepath.Glob(filepath.Join(s.root, "*_"+id+"."+key))
	return err == nil && len(matches) > 0
}

// GetSidecar reads a sidecar back. Keys ending in .json decode to their
// structure, all others return the literal text. Any failure, including
// a missing parent or unparseable JSON, reports absence rather than an
// error; bulk consumers treat a bad sidecar like a missing one.
func (s *Store) GetSidecar(id, key string) (any, bool) {
	name, err := s.lookupMeta(id)
	if err != nil {
		return nil, false
	}

	path := filepath.Join(s.root, strings.TrimSuffix(name, metaSuffix)+"."+key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	if strings.HasSuffix(key, ".json") {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, false
		}
		return v, true
	}
	return string(data), true
}

// encodeSidecar picks the on-disk form for sidecar data: JSON for maps,
// slices and structs, raw text for strings, bytes and scalars.
func encodeSidecar(data any) ([]byte, error) {
	switch v := data.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil
	}

	switch reflect.ValueOf(data).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		return json.MarshalIndent(data, "", "  ")
	default:
		return []byte(fmt.Sprint(data)), nil
	}
}
