package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-composed MUS serializers for the types that reach the deep-search
// store. The structs are small and stable, so composing the field serializers
// by hand keeps the build free of a code-generation step.
var (
	IDMUS         = idMUS{}
	PostingMUS    = postingMUS{}
	DocumentMUS   = documentMUS{}
	PostingsMUS   = ord.NewSliceSer[Posting](postingMUS{})
	IndexStatsMUS = indexStatsMUS{}

	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	categoriesMUS  = ord.NewMapSer[string, []string](ord.String, stringSliceMUS)
)

type idMUS struct{}

var _ mus.Serializer[ID] = idMUS{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type postingMUS struct{}

var _ mus.Serializer[Posting] = postingMUS{}

func (postingMUS) Marshal(p Posting, bs []byte) int {
	n := IDMUS.Marshal(p.DocId, bs)
	return n + varint.PositiveInt.Marshal(p.Count, bs[n:])
}

func (postingMUS) Unmarshal(bs []byte) (Posting, int, error) {
	var p Posting
	id, n, err := IDMUS.Unmarshal(bs)
	if err != nil {
		return p, n, err
	}
	p.DocId = id
	count, n1, err := varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	p.Count = count
	return p, n, nil
}

func (postingMUS) Size(p Posting) int {
	return IDMUS.Size(p.DocId) + varint.PositiveInt.Size(p.Count)
}

func (postingMUS) Skip(bs []byte) (int, error) {
	n, err := IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err := varint.PositiveInt.Skip(bs[n:])
	return n + n1, err
}

type documentMUS struct{}

var _ mus.Serializer[Document] = documentMUS{}

func (documentMUS) Marshal(d Document, bs []byte) int {
	n := IDMUS.Marshal(d.Id, bs)
	n += ord.String.Marshal(d.Slug, bs[n:])
	n += ord.String.Marshal(d.Title, bs[n:])
	n += varint.PositiveInt.Marshal(d.Length, bs[n:])
	return n + categoriesMUS.Marshal(d.Categories, bs[n:])
}

func (documentMUS) Unmarshal(bs []byte) (Document, int, error) {
	var d Document
	id, n, err := IDMUS.Unmarshal(bs)
	if err != nil {
		return d, n, err
	}
	d.Id = id
	var n1 int
	d.Slug, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return d, n, err
	}
	d.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return d, n, err
	}
	d.Length, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return d, n, err
	}
	d.Categories, n1, err = categoriesMUS.Unmarshal(bs[n:])
	n += n1
	return d, n, err
}

func (documentMUS) Size(d Document) int {
	return IDMUS.Size(d.Id) +
		ord.String.Size(d.Slug) +
		ord.String.Size(d.Title) +
		varint.PositiveInt.Size(d.Length) +
		categoriesMUS.Size(d.Categories)
}

func (documentMUS) Skip(bs []byte) (int, error) {
	n, err := IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip,
		ord.String.Skip,
		varint.PositiveInt.Skip,
		categoriesMUS.Skip,
	} {
		n1, err := skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

type indexStatsMUS struct{}

var _ mus.Serializer[IndexStats] = indexStatsMUS{}

func (indexStatsMUS) Marshal(s IndexStats, bs []byte) int {
	n := varint.PositiveInt.Marshal(s.DocCount, bs)
	n += varint.Int64.Marshal(s.TotalLength, bs[n:])
	return n + varint.PositiveInt.Marshal(s.TermCount, bs[n:])
}

func (indexStatsMUS) Unmarshal(bs []byte) (IndexStats, int, error) {
	var s IndexStats
	docCount, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return s, n, err
	}
	s.DocCount = docCount
	var n1 int
	s.TotalLength, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return s, n, err
	}
	s.TermCount, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	return s, n, err
}

func (indexStatsMUS) Size(s IndexStats) int {
	return varint.PositiveInt.Size(s.DocCount) +
		varint.Int64.Size(s.TotalLength) +
		varint.PositiveInt.Size(s.TermCount)
}

func (indexStatsMUS) Skip(bs []byte) (int, error) {
	n, err := varint.PositiveInt.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err := varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = varint.PositiveInt.Skip(bs[n:])
	return n + n1, err
}
