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
	"time"

	"github.com/google/uuid"

	"notifcommons/pkg/stream"
	"notifcommons/pkg/validate"
	"notifcommons/pkg/xcontent"
)

// ConfigInfo document field names.
const (
	ConfigIDTag        = "config_id"
	LastUpdatedTimeTag = "last_updated_time_ms"
	CreatedTimeTag     = "created_time_ms"
	ConfigTag          = "config"
)

// ConfigInfo is a stored NotificationConfig with its identity and timestamps.
// Timestamps travel as epoch milliseconds and are held in UTC at millisecond
// precision, so a value survives every wire form unchanged.
//
// Binary layout: config_id, last_updated_time_ms, created_time_ms, config.
type ConfigInfo struct {
	ConfigID        string              `json:"config_id" validate:"required,utf8"`
	LastUpdatedTime time.Time           `json:"last_updated_time_ms" validate:"required"`
	CreatedTime     time.Time           `json:"created_time_ms" validate:"required"`
	Config          *NotificationConfig `json:"config" validate:"required"`
}

// NewConfigID returns a fresh random config id.
func NewConfigID() string {
	return uuid.NewString()
}

func truncateMillis(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.UnixMilli(t.UnixMilli()).UTC()
}

// NewConfigInfo builds a validated config info.
func NewConfigInfo(configID string, lastUpdated, created time.Time, config *NotificationConfig) (*ConfigInfo, error) {
	info := &ConfigInfo{
		ConfigID:        configID,
		LastUpdatedTime: truncateMillis(lastUpdated),
		CreatedTime:     truncateMillis(created),
		Config:          config,
	}
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("config info: %w", err)
	}
	return info, nil
}

// Validate checks the field rules.
func (i *ConfigInfo) Validate() error {
	return validate.Struct(i)
}

// ReadConfigInfo reads a config info from its binary form.
func ReadConfigInfo(in *stream.Input) (*ConfigInfo, error) {
	configID, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	lastUpdated, err := in.ReadLong()
	if err != nil {
		return nil, err
	}
	created, err := in.ReadLong()
	if err != nil {
		return nil, err
	}
	config, err := ReadNotificationConfig(in)
	if err != nil {
		return nil, err
	}
	return NewConfigInfo(configID, time.UnixMilli(lastUpdated), time.UnixMilli(created), config)
}

// WriteStream writes the binary form.
func (i *ConfigInfo) WriteStream(out *stream.Output) {
	out.WriteString(i.ConfigID)
	out.WriteLong(i.LastUpdatedTime.UnixMilli())
	out.WriteLong(i.CreatedTime.UnixMilli())
	i.Config.WriteStream(out)
}

// ParseConfigInfo reads a config info from its document form.
func ParseConfigInfo(p *xcontent.Parser) (*ConfigInfo, error) {
	return parseConfigInfo(p, "")
}

// parseConfigInfo parses the document form; a non-empty id overrides any
// config_id field in the document.
func parseConfigInfo(p *xcontent.Parser, id string) (*ConfigInfo, error) {
	var configID string
	var lastUpdated, created time.Time
	var config *NotificationConfig
	err := p.Object(func(field string) error {
		var err error
		switch field {
		case ConfigIDTag:
			configID, err = p.TextOrEmpty()
		case LastUpdatedTimeTag:
			lastUpdated, err = parseMillis(p)
		case CreatedTimeTag:
			created, err = parseMillis(p)
		case ConfigTag:
			if p.IsNull() {
				config = nil
				return p.Skip()
			}
			config, err = ParseNotificationConfig(p)
		default:
			return p.Skip()
		}
		if err != nil {
			return fmt.Errorf("config info %s: %w", field, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if id != "" {
		configID = id
	}
	return NewConfigInfo(configID, lastUpdated, created, config)
}

func parseMillis(p *xcontent.Parser) (time.Time, error) {
	if p.IsNull() {
		return time.Time{}, p.Skip()
	}
	ms, err := p.Long()
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// ToDocument writes the document form.
func (i *ConfigInfo) ToDocument(b *xcontent.Builder) {
	b.StartObject().
		StringField(ConfigIDTag, i.ConfigID).
		LongField(LastUpdatedTimeTag, i.LastUpdatedTime.UnixMilli()).
		LongField(CreatedTimeTag, i.CreatedTime.UnixMilli()).
		ObjectField(ConfigTag, i.Config).
		EndObject()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (i *ConfigInfo) MarshalBinary() ([]byte, error) {
	return stream.Encode(i), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (i *ConfigInfo) UnmarshalBinary(data []byte) error {
	parsed, err := stream.Decode(data, ReadConfigInfo)
	if err != nil {
		return err
	}
	*i = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (i *ConfigInfo) MarshalJSON() ([]byte, error) {
	return xcontent.Marshal(i, false)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *ConfigInfo) UnmarshalJSON(data []byte) error {
	parsed, err := xcontent.Unmarshal(data, ParseConfigInfo)
	if err != nil {
		return err
	}
	*i = *parsed
	return nil
}
