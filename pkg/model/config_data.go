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

// Channel data document field names.
const (
	URLTag          = "url"
	HeaderParamsTag = "header_params"
	MethodTag       = "method"
)

// ConfigData is the channel-specific part of a NotificationConfig.
type ConfigData interface {
	BaseModel
	ConfigType() ConfigType
}

var (
	_ ConfigData = (*Slack)(nil)
	_ ConfigData = (*Chime)(nil)
	_ ConfigData = (*MicrosoftTeams)(nil)
	_ ConfigData = (*Webhook)(nil)
)

// configDataReaders and configDataParsers pick the decoder from the config
// type, which always precedes the data in both forms it is needed in.
var configDataReaders = map[ConfigType]stream.Reader[ConfigData]{
	ConfigTypeSlack:          asConfigData(ReadSlack),
	ConfigTypeChime:          asConfigData(ReadChime),
	ConfigTypeWebhook:        asConfigData(ReadWebhook),
	ConfigTypeMicrosoftTeams: asConfigData(ReadMicrosoftTeams),
}

var configDataParsers = map[ConfigType]func(*xcontent.Parser) (ConfigData, error){
	ConfigTypeSlack:          asConfigData(ParseSlack),
	ConfigTypeChime:          asConfigData(ParseChime),
	ConfigTypeWebhook:        asConfigData(ParseWebhook),
	ConfigTypeMicrosoftTeams: asConfigData(ParseMicrosoftTeams),
}

// asConfigData widens a concrete decoder without turning a failed nil
// pointer into a non-nil interface.
func asConfigData[S any, T ConfigData](decode func(S) (T, error)) func(S) (ConfigData, error) {
	return func(src S) (ConfigData, error) {
		v, err := decode(src)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func parseURLObject(p *xcontent.Parser, kind ConfigType) (string, error) {
	var url string
	err := p.Object(func(field string) error {
		if field != URLTag {
			return p.Skip()
		}
		var err error
		url, err = p.TextOrEmpty()
		if err != nil {
			return fmt.Errorf("%s %s: %w", kind, field, err)
		}
		return nil
	})
	return url, err
}

func urlDocument(b *xcontent.Builder, url string) {
	b.StartObject().StringField(URLTag, url).EndObject()
}

// Slack posts to a Slack incoming webhook.
type Slack struct {
	URL string `json:"url" validate:"required,utf8,http_url"`
}

// NewSlack builds validated Slack channel data.
func NewSlack(url string) (*Slack, error) {
	s := &Slack{URL: url}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("slack: %w", err)
	}
	return s, nil
}

func (s *Slack) ConfigType() ConfigType { return ConfigTypeSlack }

func (s *Slack) Validate() error { return validate.Struct(s) }

func (s *Slack) WriteStream(out *stream.Output) { out.WriteString(s.URL) }

func (s *Slack) ToDocument(b *xcontent.Builder) { urlDocument(b, s.URL) }

// ReadSlack reads Slack channel data from its binary form.
func ReadSlack(in *stream.Input) (*Slack, error) {
	url, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	return NewSlack(url)
}

// ParseSlack reads Slack channel data from its document form.
func ParseSlack(p *xcontent.Parser) (*Slack, error) {
	url, err := parseURLObject(p, ConfigTypeSlack)
	if err != nil {
		return nil, err
	}
	return NewSlack(url)
}

// Chime posts to an Amazon Chime room webhook.
type Chime struct {
	URL string `json:"url" validate:"required,utf8,http_url"`
}

// NewChime builds validated Chime channel data.
func NewChime(url string) (*Chime, error) {
	c := &Chime{URL: url}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("chime: %w", err)
	}
	return c, nil
}

func (c *Chime) ConfigType() ConfigType { return ConfigTypeChime }

func (c *Chime) Validate() error { return validate.Struct(c) }

func (c *Chime) WriteStream(out *stream.Output) { out.WriteString(c.URL) }

func (c *Chime) ToDocument(b *xcontent.Builder) { urlDocument(b, c.URL) }

// ReadChime reads Chime channel data from its binary form.
func ReadChime(in *stream.Input) (*Chime, error) {
	url, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	return NewChime(url)
}

// ParseChime reads Chime channel data from its document form.
func ParseChime(p *xcontent.Parser) (*Chime, error) {
	url, err := parseURLObject(p, ConfigTypeChime)
	if err != nil {
		return nil, err
	}
	return NewChime(url)
}

// MicrosoftTeams posts to a Teams incoming webhook connector.
type MicrosoftTeams struct {
	URL string `json:"url" validate:"required,utf8,http_url"`
}

// NewMicrosoftTeams builds validated Teams channel data.
func NewMicrosoftTeams(url string) (*MicrosoftTeams, error) {
	t := &MicrosoftTeams{URL: url}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("microsoft teams: %w", err)
	}
	return t, nil
}

func (t *MicrosoftTeams) ConfigType() ConfigType { return ConfigTypeMicrosoftTeams }

func (t *MicrosoftTeams) Validate() error { return validate.Struct(t) }

func (t *MicrosoftTeams) WriteStream(out *stream.Output) { out.WriteString(t.URL) }

func (t *MicrosoftTeams) ToDocument(b *xcontent.Builder) { urlDocument(b, t.URL) }

// ReadMicrosoftTeams reads Teams channel data from its binary form.
func ReadMicrosoftTeams(in *stream.Input) (*MicrosoftTeams, error) {
	url, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	return NewMicrosoftTeams(url)
}

// ParseMicrosoftTeams reads Teams channel data from its document form.
func ParseMicrosoftTeams(p *xcontent.Parser) (*MicrosoftTeams, error) {
	url, err := parseURLObject(p, ConfigTypeMicrosoftTeams)
	if err != nil {
		return nil, err
	}
	return NewMicrosoftTeams(url)
}

// HTTPMethod is the verb a Webhook uses. The binary form is the ordinal in
// httpMethods.
type HTTPMethod string

const (
	MethodPost  HTTPMethod = "POST"
	MethodPut   HTTPMethod = "PUT"
	MethodPatch HTTPMethod = "PATCH"
)

var httpMethods = []string{string(MethodPost), string(MethodPut), string(MethodPatch)}

// Webhook calls an arbitrary HTTP endpoint.
//
// Binary layout: url, header_params map, method ordinal.
type Webhook struct {
	URL          string            `json:"url" validate:"required,utf8,http_url"`
	HeaderParams map[string]string `json:"header_params" validate:"omitempty,dive,keys,utf8,endkeys,utf8"`
	Method       HTTPMethod        `json:"method" validate:"oneof=POST PUT PATCH"`
}

// NewWebhook builds validated webhook channel data. A nil header map becomes
// empty and an empty method becomes POST.
func NewWebhook(url string, headerParams map[string]string, method HTTPMethod) (*Webhook, error) {
	if headerParams == nil {
		headerParams = map[string]string{}
	}
	w := &Webhook{
		URL:          url,
		HeaderParams: headerParams,
		Method:       lo.CoalesceOrEmpty(method, MethodPost),
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("webhook: %w", err)
	}
	return w, nil
}

func (w *Webhook) ConfigType() ConfigType { return ConfigTypeWebhook }

func (w *Webhook) Validate() error { return validate.Struct(w) }

// WriteStream writes the binary form.
func (w *Webhook) WriteStream(out *stream.Output) {
	out.WriteString(w.URL)
	out.WriteStringMap(w.HeaderParams)
	out.WriteEnum(lo.IndexOf(httpMethods, string(w.Method)))
}

// ToDocument writes the document form.
func (w *Webhook) ToDocument(b *xcontent.Builder) {
	b.StartObject().
		StringField(URLTag, w.URL).
		StringMapField(HeaderParamsTag, w.HeaderParams).
		StringField(MethodTag, string(w.Method)).
		EndObject()
}

// ReadWebhook reads webhook channel data from its binary form.
func ReadWebhook(in *stream.Input) (*Webhook, error) {
	url, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	headerParams, err := in.ReadStringMap()
	if err != nil {
		return nil, err
	}
	ordinal, err := in.ReadEnum(len(httpMethods))
	if err != nil {
		return nil, err
	}
	return NewWebhook(url, headerParams, HTTPMethod(httpMethods[ordinal]))
}

// ParseWebhook reads webhook channel data from its document form.
func ParseWebhook(p *xcontent.Parser) (*Webhook, error) {
	var url string
	var headerParams map[string]string
	var method HTTPMethod
	err := p.Object(func(field string) error {
		var err error
		switch field {
		case URLTag:
			url, err = p.TextOrEmpty()
		case HeaderParamsTag:
			if p.IsNull() {
				headerParams = nil
				return p.Skip()
			}
			headerParams, err = xcontent.StringMap(p)
		case MethodTag:
			var name string
			if name, err = p.Text(); err == nil {
				err = validate.OneOf(field, name, httpMethods...)
				method = HTTPMethod(name)
			}
		default:
			return p.Skip()
		}
		if err != nil {
			return fmt.Errorf("webhook %s: %w", field, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewWebhook(url, headerParams, method)
}
