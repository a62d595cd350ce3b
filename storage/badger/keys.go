package badger

import (
	"fmt"

	"github.com/helios-eng/helios/core"
)

// Key prefixes for different data types
const (
	materialRecordPrefix = "matrec"
	materialNamePrefix   = "matname"
)

// makeMaterialKey generates a key for a material record by ID.
func makeMaterialKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", materialRecordPrefix, id))
}

// makeMaterialNameKey generates a key for the name index.
// Format: prefix:name
func makeMaterialNameKey(name string) []byte {
	return []byte(materialNamePrefix + ":" + name)
}
