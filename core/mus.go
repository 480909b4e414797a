// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the corpus snapshot. Written by hand against the
// mus-go primitive serializers; the layouts are small and stable.
var (
	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	vectorMUS      = ord.NewSliceSer[float32](raw.Float32)
	vectorsMUS     = ord.NewSliceSer[[]float32](vectorMUS)
	papersMUS      = ord.NewSliceSer[Paper](PaperMUS)

	// PaperMUS serializes a Paper.
	PaperMUS = paperMUS{}
	// SnapshotMUS serializes a corpus Snapshot.
	SnapshotMUS = snapshotMUS{}
)

type paperMUS struct{}

func (paperMUS) Marshal(p Paper, bs []byte) (n int) {
	n = varint.Int.Marshal(p.Id, bs)
	n += ord.String.Marshal(p.Title, bs[n:])
	n += ord.String.Marshal(p.Abstract, bs[n:])
	n += ord.String.Marshal(p.Author, bs[n:])
	n += stringSliceMUS.Marshal(p.CoAuthors, bs[n:])
	n += stringSliceMUS.Marshal(p.Keywords, bs[n:])
	n += varint.Int.Marshal(p.Year, bs[n:])
	n += ord.String.Marshal(p.Doi, bs[n:])
	return
}

func (paperMUS) Unmarshal(bs []byte) (p Paper, n int, err error) {
	var n1 int
	p.Id, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	p.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Abstract, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Author, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.CoAuthors, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Keywords, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Year, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Doi, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (paperMUS) Size(p Paper) (size int) {
	size = varint.Int.Size(p.Id)
	size += ord.String.Size(p.Title)
	size += ord.String.Size(p.Abstract)
	size += ord.String.Size(p.Author)
	size += stringSliceMUS.Size(p.CoAuthors)
	size += stringSliceMUS.Size(p.Keywords)
	size += varint.Int.Size(p.Year)
	size += ord.String.Size(p.Doi)
	return
}

func (paperMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return
	}
	for range 3 {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = stringSliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = stringSliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

type snapshotMUS struct{}

func (snapshotMUS) Marshal(s Snapshot, bs []byte) (n int) {
	n = papersMUS.Marshal(s.Papers, bs)
	n += vectorsMUS.Marshal(s.Vectors, bs[n:])
	return
}

func (snapshotMUS) Unmarshal(bs []byte) (s Snapshot, n int, err error) {
	var n1 int
	s.Papers, n, err = papersMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	s.Vectors, n1, err = vectorsMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (snapshotMUS) Size(s Snapshot) (size int) {
	size = papersMUS.Size(s.Papers)
	size += vectorsMUS.Size(s.Vectors)
	return
}

func (snapshotMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = papersMUS.Skip(bs)
	if err != nil {
		return
	}
	n1, err = vectorsMUS.Skip(bs[n:])
	n += n1
	return
}
