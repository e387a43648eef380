// Package provenance computes order-independent content hashes over pipeline
// inputs and outputs for caching and audit.
package provenance

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/rotisserie/eris"
)

// HashObject returns the sha256 hex digest of v's canonical JSON form.
// Canonicalization round-trips v through a generic JSON value so that map
// keys are emitted in sorted order; two objects that differ only in key
// construction order hash identically.
func HashObject(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", eris.Wrap(err, "provenance: marshal")
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", eris.Wrap(err, "provenance: canonicalize")
	}

	// encoding/json sorts map keys on marshal, which makes the re-encoded
	// form canonical for any object graph of maps, slices, and scalars.
	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", eris.Wrap(err, "provenance: remarshal")
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// HashString returns the sha256 hex digest of a raw string. Used for prompt
// and guidance text where the bytes themselves are the content.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashSet hashes a collection as an unordered set: each element is hashed
// individually, the element hashes are sorted, and the digest is taken over
// the sorted concatenation. Reordering elements never changes the result;
// changing any element always does.
func HashSet[T any](items []T) (string, error) {
	hashes := make([]string, 0, len(items))
	for _, item := range items {
		h, err := HashObject(item)
		if err != nil {
			return "", err
		}
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	combined := sha256.New()
	for _, h := range hashes {
		combined.Write([]byte(h))
	}
	return hex.EncodeToString(combined.Sum(nil)), nil
}
