package policy

import (
	"crypto/sha256"
	"fmt"
	"os"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"gopkg.in/yaml.v3"
)

// File is a policy patch loaded from disk at startup.
type File struct {
	Path        string
	Patch       v1.PolicyPatch
	Fingerprint string // SHA-256 of the raw file
}

// LoadFile reads a YAML policy document. The document uses the same field names
// as the JSON policy and is applied as a patch over Defaults, so it only needs to
// list the fields it changes. A missing path yields an empty patch.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{Path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading policy file %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing policy file %s: %w", path, err)
	}

	return &File{
		Path:        path,
		Patch:       ParsePatch(raw),
		Fingerprint: fmt.Sprintf("%x", sha256.Sum256(data)),
	}, nil
}
