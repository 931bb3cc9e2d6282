package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for indexed documents.
// It is generated from content-based hashing of the document slug.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ActType is the closed vocabulary of normative-act types.
// The zero value is not valid; unclassifiable titles map to ActTypeOutro.
type ActType string

const (
	ActTypeEmendaConstitucional ActType = "Emenda Constitucional"
	ActTypeLeiComplementar      ActType = "Lei Complementar"
	ActTypeDecretoLei           ActType = "Decreto-Lei"
	ActTypeDecretoJudiciario    ActType = "Decreto Judiciário"
	ActTypeDecreto              ActType = "Decreto"
	ActTypeInstrucaoNormativa   ActType = "Instrução Normativa"
	ActTypeResolucao            ActType = "Resolução"
	ActTypeProvimento           ActType = "Provimento"
	ActTypePortaria             ActType = "Portaria"
	ActTypeLei                  ActType = "Lei"
	ActTypeOutro                ActType = "Outro"
)

// ActTypesBySpecificity lists every classifiable act type ordered from most
// to least specific. Classification must test labels in this order so that a
// title containing "Lei Complementar" is never matched by the shorter "Lei".
var ActTypesBySpecificity = []ActType{
	ActTypeEmendaConstitucional,
	ActTypeLeiComplementar,
	ActTypeDecretoLei,
	ActTypeDecretoJudiciario,
	ActTypeInstrucaoNormativa,
	ActTypeResolucao,
	ActTypeProvimento,
	ActTypePortaria,
	ActTypeDecreto,
	ActTypeLei,
}

// Canonical issuing-body labels. Raw heading text that matches none of the
// known tokens passes through unchanged, so these are not a closed set.
const (
	BodyFederal  = "Federal"
	BodyEstadual = "Estadual"
	BodyTJPR     = "TJPR"
	BodyCNJ      = "CNJ"
)

// Filter category names. These match the metadata names embedded in the
// published act pages, so they are shared by the in-memory engine and the
// deep-search index.
const (
	CategoryOrgao = "orgao"
	CategoryTipo  = "tipo"
	CategoryAno   = "ano"
)

// FilterAll is the sentinel select value meaning "no constraint". It is never
// a legal member of a multi-value constraint set.
const FilterAll = "todos"

// Ato is one extracted normative-act record.
//
// Records are created once per catalog load, in document order, and are never
// mutated afterwards. StableIndex is the record's ordinal position at
// extraction time; it is unique within a load and is the join key back to
// the record's line in the catalog tree. The record does not own that line,
// it only back-references it for visibility toggling.
type Ato struct {
	StableIndex int
	Slug        string
	Title       string
	Summary     string
	IssuingBody string
	Type        ActType
	Year        string
	SourceURL   string
}

// Document is one act page stored in the deep-search index: the searchable
// text plus the filter metadata embedded in the page.
type Document struct {
	Id         ID
	Slug       string
	Title      string
	Length     int
	Categories map[string][]string
}

// Posting records one document occurrence of an indexed term.
type Posting struct {
	DocId ID
	Count int
}

// IndexStats summarizes a deep-search index for scoring and status reporting.
type IndexStats struct {
	DocCount    int
	TotalLength int64
	TermCount   int
}

// Hit is one deep-search result with its relevance score.
type Hit struct {
	Document *Document
	Score    float64
}
