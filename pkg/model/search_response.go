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

	"notifcommons/pkg/validate"
	"notifcommons/pkg/xcontent"
)

// TotalHits is the hit count reported by a search backend.
type TotalHits struct {
	Value    int64
	Relation TotalHitsRelation
}

// PagedResponse is what a search backend hands back for one page of hits.
type PagedResponse[R any] interface {
	// From is the offset of the first hit in the full result set.
	From() int64
	// TotalHits may be nil when the backend did not track totals; that is
	// read as zero, exact.
	TotalHits() *TotalHits
	Hits() []R
}

// SearchResponse is a plain PagedResponse.
type SearchResponse[R any] struct {
	Start   int64
	Total   *TotalHits
	Records []R
}

func (s *SearchResponse[R]) From() int64           { return s.Start }
func (s *SearchResponse[R]) TotalHits() *TotalHits { return s.Total }
func (s *SearchResponse[R]) Hits() []R             { return s.Records }

// HitParser turns one raw hit into a model.
type HitParser[R any, T any] func(hit R) (T, error)

// ParseHitSource adapts a document parser to hits whose source is raw JSON.
func ParseHitSource[T any](parse func(*xcontent.Parser) (T, error)) HitParser[[]byte, T] {
	return func(source []byte) (T, error) {
		return xcontent.Unmarshal(source, parse)
	}
}

// SearchResultsFromResponse builds a window from a backend page, parsing
// every hit in order. One bad hit fails the whole conversion.
func SearchResultsFromResponse[R any, T BaseModel](resp PagedResponse[R], tag string, parseHit HitParser[R, T]) (*SearchResults[T], error) {
	total := TotalHits{Relation: EqualTo}
	if t := resp.TotalHits(); t != nil {
		total = *t
	}
	hits := resp.Hits()
	items := make([]T, 0, len(hits))
	for i, hit := range hits {
		item, err := parseHit(hit)
		if err != nil {
			return nil, fmt.Errorf("search results: hit %d: %w", i, err)
		}
		if lo.IsNil(item) {
			return nil, fmt.Errorf("search results: hit %d: %w: parser returned no item", i, validate.ErrIllegalArgument)
		}
		items = append(items, item)
	}
	return NewSearchResults(resp.From(), total.Value, total.Relation, tag, items)
}
