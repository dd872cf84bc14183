package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BatchFile is the name of the combined file written by WriteDataset.
const BatchFile = "batch.json"

// WriteDataset serializes every request into request-NNNN.json plus a combined
// batch.json under the provided directory.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for i, req := range dataset.Requests {
		path := filepath.Join(dir, fmt.Sprintf("request-%04d.json", i+1))
		if err := writeJSON(path, req); err != nil {
			return err
		}
	}

	return writeJSON(filepath.Join(dir, BatchFile), dataset)
}

// ReadRequests loads a file holding either one request or a {"requests": [...]} batch.
func ReadRequests(path string) ([]Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if _, ok := probe["requests"]; ok {
		var dataset Dataset
		if err := decodeStrict(data, &dataset); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return dataset.Requests, nil
	}

	var req Request
	if err := decodeStrict(data, &req); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return []Request{req}, nil
}

func decodeStrict(data []byte, dst any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(path string, data any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}
	return nil
}
