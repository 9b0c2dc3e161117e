package archive

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

// Get parses the record's metadata file into lowercased fields. A
// header that repeats becomes an ordered []string. With includeContent
// set, body keys are merged over the header fields (last write wins);
// an absent body file is not an error, the content keys are just
// omitted. Returns ErrRecordNotFound when no metadata file matches.
func (s *Store) Get(id string, includeContent bool) (types.Fields, error) {
	name, err := s.lookupMeta(id)
	if err != nil {
		return nil, err
	}

	fields, err := s.readMeta(name)
	if err != nil {
		return nil, err
	}

	if includeContent {
		if err := s.mergeBody(strings.TrimSuffix(name, metaSuffix), fields); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// readMeta parses "Key: value" lines. Save guarantees one logical
// header per physical line, so no continuation handling is needed.
func (s *Store) readMeta(name string) (types.Fields, error) {
	f, err := os.Open(filepath.Join(s.root, name))
	if err != nil {
		return nil, fmt.Errorf("open metadata: %w", err)
	}
	defer f.Close()

	fields := types.Fields{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch prev := fields[key].(type) {
		case nil:
			fields[key] = value
		case string:
			fields[key] = []string{prev, value}
		case []string:
			fields[key] = append(prev, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	return fields, nil
}

// mergeBody decodes the body file into the fields map. Object bodies
// merge key by key; any other JSON value lands under "content".
func (s *Store) mergeBody(st string, fields types.Fields) error {
	data, err := os.ReadFile(filepath.Join(s.root, st+bodySuffix))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var content map[string]any
	if err := json.Unmarshal(data, &content); err == nil {
		for k, v := range content {
			fields[k] = v
		}
		return nil
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	fields["content"] = value
	return nil
}
