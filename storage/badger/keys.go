package badger

import (
	"fmt"

	"github.com/agc2020/consulta/core"
)

// Key prefixes for the deep-search index data.
const (
	documentPrefix     = "dsdoc"
	documentSlugPrefix = "dsslug"
	postingPrefix      = "dspost"
	statsKey           = "dsstat"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeSlugKey generates a key for the slug index.
func makeSlugKey(slug string) []byte {
	return []byte(documentSlugPrefix + ":" + slug)
}

// makePostingKey generates a key for a term's posting list.
func makePostingKey(term string) []byte {
	return []byte(postingPrefix + ":" + term)
}
