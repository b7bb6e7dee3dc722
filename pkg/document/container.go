package document

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Container is the persisted form of a structure: the canonical serialized
// structure paired with the digest computed over exactly those bytes.
type Container struct {
	FormStructure string `json:"form_structure"`
	FormHash      string `json:"form_hash"`
}

// Empty reports whether the container carries no serialized structure.
func (c Container) Empty() bool {
	return c.FormStructure == ""
}

// Hasher computes the integrity digest of a serialized structure.
type Hasher func(data []byte) string

// SHA1Hex is the default Hasher: the lowercase hex SHA-1 of data.
func SHA1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Serialize encodes structure in the authoring wire format and canonicalises
// it with RFC 8785 so equal structures always produce identical bytes.
func Serialize(structure model.Structure) (string, error) {
	if structure == nil {
		structure = model.Structure{}
	}
	raw, err := json.Marshal(structure)
	if err != nil {
		return "", fmt.Errorf("document: marshal structure: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("document: canonicalise structure: %w", err)
	}
	return string(canonical), nil
}

// Deserialize decodes a serialized structure. Individual malformed entries
// degrade to empty fields; only a payload that is not a JSON list fails.
func Deserialize(serialized string) (model.Structure, error) {
	var structure model.Structure
	if err := json.Unmarshal([]byte(serialized), &structure); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return structure, nil
}
