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
	"notifcommons/pkg/stream"
	"notifcommons/pkg/xcontent"
)

// ConfigListTag is the document field holding the configs of a
// ConfigSearchResult.
const ConfigListTag = "config_list"

// ConfigSearchResult is a page of stored notification configs.
type ConfigSearchResult struct {
	SearchResults[*ConfigInfo]
}

func wrapConfigResult(r *SearchResults[*ConfigInfo], err error) (*ConfigSearchResult, error) {
	if err != nil {
		return nil, err
	}
	return &ConfigSearchResult{SearchResults: *r}, nil
}

// NewConfigSearchResultOf wraps a single config.
func NewConfigSearchResultOf(item *ConfigInfo) (*ConfigSearchResult, error) {
	return wrapConfigResult(NewSearchResultsOf(ConfigListTag, item))
}

// NewConfigSearchResultFromList wraps a complete list of configs.
func NewConfigSearchResultFromList(items []*ConfigInfo) (*ConfigSearchResult, error) {
	return wrapConfigResult(NewSearchResultsFromList(ConfigListTag, items))
}

// NewConfigSearchResult builds a page with explicit pagination metadata.
func NewConfigSearchResult(startIndex, totalHits int64, relation TotalHitsRelation, items []*ConfigInfo) (*ConfigSearchResult, error) {
	return wrapConfigResult(NewSearchResults(startIndex, totalHits, relation, ConfigListTag, items))
}

// ReadConfigSearchResult reads a page from its binary form.
func ReadConfigSearchResult(in *stream.Input) (*ConfigSearchResult, error) {
	return wrapConfigResult(ReadSearchResults(in, ConfigListTag, ReadConfigInfo))
}

// ParseConfigSearchResult reads a page from its document form.
func ParseConfigSearchResult(p *xcontent.Parser) (*ConfigSearchResult, error) {
	return wrapConfigResult(ParseSearchResults(p, ConfigListTag, ParseConfigInfo))
}

// ConfigSearchResultFromResponse converts a backend page of hits.
func ConfigSearchResultFromResponse[R any](resp PagedResponse[R], parseHit HitParser[R, *ConfigInfo]) (*ConfigSearchResult, error) {
	return wrapConfigResult(SearchResultsFromResponse(resp, ConfigListTag, parseHit))
}

// SearchHit is one stored document as returned by the config index.
type SearchHit struct {
	ID     string
	Source []byte
}

// ParseConfigInfoHit parses a config index hit. The hit id is the config id
// and takes precedence over any config_id in the source.
func ParseConfigInfoHit(hit SearchHit) (*ConfigInfo, error) {
	return xcontent.Unmarshal(hit.Source, func(p *xcontent.Parser) (*ConfigInfo, error) {
		return parseConfigInfo(p, hit.ID)
	})
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *ConfigSearchResult) MarshalBinary() ([]byte, error) {
	return stream.Encode(r), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *ConfigSearchResult) UnmarshalBinary(data []byte) error {
	parsed, err := stream.Decode(data, ReadConfigSearchResult)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r *ConfigSearchResult) MarshalJSON() ([]byte, error) {
	return xcontent.Marshal(r, false)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *ConfigSearchResult) UnmarshalJSON(data []byte) error {
	parsed, err := xcontent.Unmarshal(data, ParseConfigSearchResult)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}
