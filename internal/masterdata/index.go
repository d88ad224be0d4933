// Package masterdata provides the read-only reference snapshot used for
// entity resolution during imports.
//
// An Index is loaded once at the start of each preview or commit call and
// held immutable for the call's duration. Concurrent edits made through
// other code paths become visible on the next call, never mid-batch.
package masterdata

import (
	"strings"
	"sync"
)

// Kind identifies a reference collection within the snapshot.
type Kind string

const (
	KindEmployee Kind = "employee"
	KindSite     Kind = "site"
	KindMaterial Kind = "material"
)

// Entity is one entry of a reference collection.
type Entity struct {
	ID          string   // Stable identifier (uuid in the store)
	Code        string   // Canonical code, may be empty (e.g. badge or product code)
	DisplayName string   // Primary human-readable name
	Qualifier   string   // Secondary discriminator; brand for materials, empty otherwise
	Aliases     []string // Alternative spellings that resolve exactly
}

// Index is a point-in-time snapshot of all reference collections.
// It is safe for concurrent reads and must never be mutated after Load.
type Index struct {
	Employees []Entity
	Sites     []Entity
	Materials []Entity

	materialKeysOnce sync.Once
	materialKeys     map[string]string
}

// Collection returns the entities for a kind. Unknown kinds return nil.
func (ix *Index) Collection(kind Kind) []Entity {
	switch kind {
	case KindEmployee:
		return ix.Employees
	case KindSite:
		return ix.Sites
	case KindMaterial:
		return ix.Materials
	default:
		return nil
	}
}

// MaterialKey builds the duplicate-detection key for a material: the
// lowercased, whitespace-collapsed (name, brand) pair.
func MaterialKey(name, brand string) string {
	return collapse(name) + "|" + collapse(brand)
}

// MaterialKeys returns the key of every material in the snapshot mapped to
// its entity id. Built lazily on first use and cached for the snapshot's
// lifetime.
func (ix *Index) MaterialKeys() map[string]string {
	ix.materialKeysOnce.Do(func() {
		ix.materialKeys = make(map[string]string, len(ix.Materials))
		for _, m := range ix.Materials {
			ix.materialKeys[MaterialKey(m.DisplayName, m.Qualifier)] = m.ID
		}
	})
	return ix.materialKeys
}

func collapse(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
