/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package model

import (
	"fmt"

	"github.com/samber/lo"

	"notifcommons/pkg/stream"
	"notifcommons/pkg/validate"
	"notifcommons/pkg/xcontent"
)

// SearchResults document field names. The item list is written under the
// tag of each specialization.
const (
	StartIndexTag       = "start_index"
	TotalHitsTag        = "total_hits"
	TotalHitRelationTag = "total_hit_relation"
)

// SearchResults is a window over a larger ordered collection of models.
//
// Binary layout: start_index, total_hits, total_hit_relation ordinal, item list.
//
// Invariants, checked on every construction path:
//
//	0 <= StartIndex
//	len(Items) <= TotalHits
//	Tag != ""
type SearchResults[T BaseModel] struct {
	StartIndex        int64
	TotalHits         int64
	TotalHitsRelation TotalHitsRelation
	Tag               string
	Items             []T
}

// NewSearchResults builds a window with explicit pagination metadata.
func NewSearchResults[T BaseModel](startIndex, totalHits int64, relation TotalHitsRelation, tag string, items []T) (*SearchResults[T], error) {
	if items == nil {
		items = []T{}
	}
	r := &SearchResults[T]{
		StartIndex:        startIndex,
		TotalHits:         totalHits,
		TotalHitsRelation: relation,
		Tag:               tag,
		Items:             items,
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("search results: %w", err)
	}
	return r, nil
}

// NewSearchResultsFromList wraps a whole collection: start 0, total equal to
// the item count, exact relation.
func NewSearchResultsFromList[T BaseModel](tag string, items []T) (*SearchResults[T], error) {
	return NewSearchResults(0, int64(len(items)), EqualTo, tag, items)
}

// NewSearchResultsOf wraps a single item as a whole collection.
func NewSearchResultsOf[T BaseModel](tag string, item T) (*SearchResults[T], error) {
	return NewSearchResultsFromList(tag, []T{item})
}

// Validate checks the pagination invariants and every item.
func (r *SearchResults[T]) Validate() error {
	if err := validate.RequireString("tag", r.Tag); err != nil {
		return err
	}
	switch {
	case r.StartIndex < 0:
		return fmt.Errorf("%w: %s %d must be >= 0", validate.ErrIllegalArgument, StartIndexTag, r.StartIndex)
	case r.TotalHits < 0:
		return fmt.Errorf("%w: %s %d must be >= 0", validate.ErrIllegalArgument, TotalHitsTag, r.TotalHits)
	case int64(len(r.Items)) > r.TotalHits:
		return fmt.Errorf("%w: %s holds %d items but %s is %d", validate.ErrIllegalArgument, r.Tag, len(r.Items), TotalHitsTag, r.TotalHits)
	case r.TotalHitsRelation < 0 || r.TotalHitsRelation >= totalHitsRelationCount:
		return fmt.Errorf("%w: %s %s", validate.ErrIllegalArgument, TotalHitRelationTag, r.TotalHitsRelation)
	}
	for i, item := range r.Items {
		if lo.IsNil(item) {
			return fmt.Errorf("%w: %s[%d] is null", validate.ErrIllegalArgument, r.Tag, i)
		}
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%s[%d]: %w", r.Tag, i, err)
		}
	}
	return nil
}

// ReadSearchResults reads a window from its binary form, decoding each item
// with read. The tag is not part of the binary form.
func ReadSearchResults[T BaseModel](in *stream.Input, tag string, read stream.Reader[T]) (*SearchResults[T], error) {
	startIndex, err := in.ReadLong()
	if err != nil {
		return nil, err
	}
	totalHits, err := in.ReadLong()
	if err != nil {
		return nil, err
	}
	relation, err := readTotalHitsRelation(in)
	if err != nil {
		return nil, err
	}
	items, err := stream.ReadList(in, read)
	if err != nil {
		return nil, err
	}
	return NewSearchResults(startIndex, totalHits, relation, tag, items)
}

// WriteStream writes the binary form.
func (r *SearchResults[T]) WriteStream(out *stream.Output) {
	out.WriteLong(r.StartIndex)
	out.WriteLong(r.TotalHits)
	out.WriteEnum(int(r.TotalHitsRelation))
	stream.WriteList(out, r.Items)
}

// ParseSearchResults reads a window from its document form. The item array
// under tag is required; absent metadata defaults to the whole collection.
func ParseSearchResults[T BaseModel](p *xcontent.Parser, tag string, parse func(*xcontent.Parser) (T, error)) (*SearchResults[T], error) {
	var startIndex int64
	var totalHits int64
	relation := EqualTo
	var items []T
	seenTotal, seenList := false, false
	err := p.Object(func(field string) error {
		var err error
		switch field {
		case StartIndexTag:
			startIndex, err = p.Long()
		case TotalHitsTag:
			totalHits, err = p.Long()
			seenTotal = true
		case TotalHitRelationTag:
			var name string
			if name, err = p.Text(); err == nil {
				relation, err = TotalHitsRelationFromName(name)
			}
		case tag:
			items, err = xcontent.ObjectList(p, parse)
			seenList = true
		default:
			return p.Skip()
		}
		if err != nil {
			return fmt.Errorf("search results %s: %w", field, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := validate.RequirePresent(tag, seenList); err != nil {
		return nil, fmt.Errorf("search results: %w", err)
	}
	if !seenTotal {
		totalHits = int64(len(items))
	}
	return NewSearchResults(startIndex, totalHits, relation, tag, items)
}

// ToDocument writes the document form.
func (r *SearchResults[T]) ToDocument(b *xcontent.Builder) {
	b.StartObject().
		LongField(StartIndexTag, r.StartIndex).
		LongField(TotalHitsTag, r.TotalHits).
		StringField(TotalHitRelationTag, r.TotalHitsRelation.String())
	xcontent.ObjectListField(b, r.Tag, r.Items)
	b.EndObject()
}
