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

// Package action holds the request and response objects of the notification
// plugin actions. They follow the same conventions as package model.
package action

import (
	"fmt"

	"github.com/samber/lo"

	"notifcommons/pkg/model"
	"notifcommons/pkg/stream"
	"notifcommons/pkg/validate"
	"notifcommons/pkg/xcontent"
)

// Document field names.
const (
	CompactTag               = "compact"
	AllowedConfigTypeListTag = "allowed_config_type_list"
	PluginFeaturesTag        = "plugin_features"
)

var (
	_ model.BaseModel = (*GetPluginFeaturesRequest)(nil)
	_ model.BaseModel = (*GetPluginFeaturesResponse)(nil)
)

// GetPluginFeaturesRequest asks a node which channel types and features it
// supports.
//
// Binary layout: compact.
type GetPluginFeaturesRequest struct {
	Compact bool `json:"compact"`
}

// NewGetPluginFeaturesRequest builds a request.
func NewGetPluginFeaturesRequest(compact bool) *GetPluginFeaturesRequest {
	return &GetPluginFeaturesRequest{Compact: compact}
}

// Validate always succeeds; every field has a usable default.
func (r *GetPluginFeaturesRequest) Validate() error { return nil }

// ReadGetPluginFeaturesRequest reads a request from its binary form.
func ReadGetPluginFeaturesRequest(in *stream.Input) (*GetPluginFeaturesRequest, error) {
	compact, err := in.ReadBool()
	if err != nil {
		return nil, err
	}
	return NewGetPluginFeaturesRequest(compact), nil
}

// WriteStream writes the binary form.
func (r *GetPluginFeaturesRequest) WriteStream(out *stream.Output) {
	out.WriteBool(r.Compact)
}

// ParseGetPluginFeaturesRequest reads a request from its document form.
func ParseGetPluginFeaturesRequest(p *xcontent.Parser) (*GetPluginFeaturesRequest, error) {
	var compact bool
	err := p.Object(func(field string) error {
		if field != CompactTag {
			return p.Skip()
		}
		var err error
		if compact, err = p.Bool(); err != nil {
			return fmt.Errorf("plugin features request %s: %w", field, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewGetPluginFeaturesRequest(compact), nil
}

// ToDocument writes the document form.
func (r *GetPluginFeaturesRequest) ToDocument(b *xcontent.Builder) {
	b.StartObject().BoolField(CompactTag, r.Compact).EndObject()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *GetPluginFeaturesRequest) MarshalBinary() ([]byte, error) {
	return stream.Encode(r), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *GetPluginFeaturesRequest) UnmarshalBinary(data []byte) error {
	parsed, err := stream.Decode(data, ReadGetPluginFeaturesRequest)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r *GetPluginFeaturesRequest) MarshalJSON() ([]byte, error) {
	return xcontent.Marshal(r, false)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *GetPluginFeaturesRequest) UnmarshalJSON(data []byte) error {
	parsed, err := xcontent.Unmarshal(data, ParseGetPluginFeaturesRequest)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// GetPluginFeaturesResponse lists the channel types a node accepts and its
// feature flags.
//
// Binary layout: allowed_config_type_list, plugin_features.
type GetPluginFeaturesResponse struct {
	AllowedConfigTypes []string          `json:"allowed_config_type_list"`
	PluginFeatures     map[string]string `json:"plugin_features" validate:"omitempty,dive,keys,utf8,endkeys,utf8"`
}

// NewGetPluginFeaturesResponse builds a validated response. Nil collections
// become empty.
func NewGetPluginFeaturesResponse(allowedConfigTypes []string, pluginFeatures map[string]string) (*GetPluginFeaturesResponse, error) {
	r := &GetPluginFeaturesResponse{
		AllowedConfigTypes: lo.Ternary(allowedConfigTypes == nil, []string{}, allowedConfigTypes),
		PluginFeatures:     lo.Ternary(pluginFeatures == nil, map[string]string{}, pluginFeatures),
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("plugin features response: %w", err)
	}
	return r, nil
}

// Validate checks that every allowed type names a channel type.
func (r *GetPluginFeaturesResponse) Validate() error {
	for _, tag := range r.AllowedConfigTypes {
		t, err := model.ConfigTypeFromTag(tag)
		if err != nil {
			return err
		}
		if !t.IsChannel() {
			return fmt.Errorf("%w: %s %q is not a channel type", validate.ErrIllegalArgument, AllowedConfigTypeListTag, tag)
		}
	}
	return validate.Struct(r)
}

// ReadGetPluginFeaturesResponse reads a response from its binary form.
func ReadGetPluginFeaturesResponse(in *stream.Input) (*GetPluginFeaturesResponse, error) {
	allowed, err := in.ReadStringList()
	if err != nil {
		return nil, err
	}
	features, err := in.ReadStringMap()
	if err != nil {
		return nil, err
	}
	return NewGetPluginFeaturesResponse(allowed, features)
}

// WriteStream writes the binary form.
func (r *GetPluginFeaturesResponse) WriteStream(out *stream.Output) {
	out.WriteStringList(r.AllowedConfigTypes)
	out.WriteStringMap(r.PluginFeatures)
}

// ParseGetPluginFeaturesResponse reads a response from its document form.
// Both fields must be present, though either may be empty.
func ParseGetPluginFeaturesResponse(p *xcontent.Parser) (*GetPluginFeaturesResponse, error) {
	var allowed []string
	var features map[string]string
	err := p.Object(func(field string) error {
		var err error
		switch field {
		case AllowedConfigTypeListTag:
			allowed, err = xcontent.StringList(p)
		case PluginFeaturesTag:
			features, err = xcontent.StringMap(p)
		default:
			return p.Skip()
		}
		if err != nil {
			return fmt.Errorf("plugin features response %s: %w", field, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := validate.RequirePresent(AllowedConfigTypeListTag, allowed != nil); err != nil {
		return nil, err
	}
	if err := validate.RequirePresent(PluginFeaturesTag, features != nil); err != nil {
		return nil, err
	}
	return NewGetPluginFeaturesResponse(allowed, features)
}

// ToDocument writes the document form.
func (r *GetPluginFeaturesResponse) ToDocument(b *xcontent.Builder) {
	b.StartObject().
		StringListField(AllowedConfigTypeListTag, r.AllowedConfigTypes).
		StringMapField(PluginFeaturesTag, r.PluginFeatures).
		EndObject()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *GetPluginFeaturesResponse) MarshalBinary() ([]byte, error) {
	return stream.Encode(r), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *GetPluginFeaturesResponse) UnmarshalBinary(data []byte) error {
	parsed, err := stream.Decode(data, ReadGetPluginFeaturesResponse)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r *GetPluginFeaturesResponse) MarshalJSON() ([]byte, error) {
	return xcontent.Marshal(r, false)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *GetPluginFeaturesResponse) UnmarshalJSON(data []byte) error {
	parsed, err := xcontent.Unmarshal(data, ParseGetPluginFeaturesResponse)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}
