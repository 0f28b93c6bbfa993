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

	"notifcommons/pkg/stream"
	"notifcommons/pkg/validate"
	"notifcommons/pkg/xcontent"
)

// NotificationConfig document field names. The channel data has no fixed
// name: it sits under the tag of its ConfigType, e.g. "slack".
const (
	NameTag        = "name"
	DescriptionTag = "description"
	ConfigTypeTag  = "config_type"
	IsEnabledTag   = "is_enabled"
)

// NotificationConfig describes one notification channel.
//
// Binary layout: name, description, config_type ordinal, is_enabled,
// optional channel data whose layout depends on config_type.
type NotificationConfig struct {
	Name        string     `json:"name" validate:"required,utf8"`
	Description string     `json:"description" validate:"utf8"`
	ConfigType  ConfigType `json:"config_type"`
	IsEnabled   bool       `json:"is_enabled"`
	ConfigData  ConfigData `json:"config_data" validate:"required"`
}

// NewNotificationConfig builds a validated config.
func NewNotificationConfig(name, description string, configType ConfigType, isEnabled bool, data ConfigData) (*NotificationConfig, error) {
	c := &NotificationConfig{
		Name:        name,
		Description: description,
		ConfigType:  configType,
		IsEnabled:   isEnabled,
		ConfigData:  data,
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("notification config: %w", err)
	}
	return c, nil
}

// Validate checks the field rules and that the channel data matches the type.
func (c *NotificationConfig) Validate() error {
	if !c.ConfigType.IsChannel() {
		return fmt.Errorf("%w: %s %q is not a channel type", validate.ErrIllegalArgument, ConfigTypeTag, c.ConfigType)
	}
	if err := validate.Struct(c); err != nil {
		return err
	}
	if got := c.ConfigData.ConfigType(); got != c.ConfigType {
		return fmt.Errorf("%w: %s data does not match %s %q", validate.ErrIllegalArgument, got, ConfigTypeTag, c.ConfigType)
	}
	return nil
}

// ReadNotificationConfig reads a config from its binary form.
func ReadNotificationConfig(in *stream.Input) (*NotificationConfig, error) {
	name, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	description, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	configType, err := readConfigType(in)
	if err != nil {
		return nil, err
	}
	isEnabled, err := in.ReadBool()
	if err != nil {
		return nil, err
	}
	read, ok := configDataReaders[configType]
	if !ok {
		return nil, fmt.Errorf("%w: no channel data layout for %s %q", stream.ErrStreamCorruption, ConfigTypeTag, configType)
	}
	data, _, err := stream.ReadOptionalValue(in, read)
	if err != nil {
		return nil, err
	}
	return NewNotificationConfig(name, description, configType, isEnabled, data)
}

// WriteStream writes the binary form.
func (c *NotificationConfig) WriteStream(out *stream.Output) {
	out.WriteString(c.Name)
	out.WriteString(c.Description)
	out.WriteEnum(int(c.ConfigType))
	out.WriteBool(c.IsEnabled)
	out.WriteBool(c.ConfigData != nil)
	if c.ConfigData != nil {
		c.ConfigData.WriteStream(out)
	}
}

// ParseNotificationConfig reads a config from its document form. When the
// same channel field repeats, the last one wins.
func ParseNotificationConfig(p *xcontent.Parser) (*NotificationConfig, error) {
	var name, description string
	var configType ConfigType
	isEnabled := true
	var data ConfigData
	err := p.Object(func(field string) error {
		var err error
		switch field {
		case NameTag:
			name, err = p.TextOrEmpty()
		case DescriptionTag:
			description, err = p.TextOrEmpty()
		case ConfigTypeTag:
			var tag string
			if tag, err = p.Text(); err == nil {
				configType, err = ConfigTypeFromTag(tag)
			}
		case IsEnabledTag:
			isEnabled, err = p.Bool()
		default:
			t, known := configTypeByTag[field]
			parse, channel := configDataParsers[t]
			if !known || !channel {
				return p.Skip()
			}
			data, err = parse(p)
		}
		if err != nil {
			return fmt.Errorf("notification config %s: %w", field, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewNotificationConfig(name, description, configType, isEnabled, data)
}

// ToDocument writes the document form.
func (c *NotificationConfig) ToDocument(b *xcontent.Builder) {
	b.StartObject().
		StringField(NameTag, c.Name).
		StringField(DescriptionTag, c.Description).
		StringField(ConfigTypeTag, c.ConfigType.Tag()).
		BoolField(IsEnabledTag, c.IsEnabled)
	if c.ConfigData != nil {
		b.ObjectField(c.ConfigType.Tag(), c.ConfigData)
	}
	b.EndObject()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *NotificationConfig) MarshalBinary() ([]byte, error) {
	return stream.Encode(c), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *NotificationConfig) UnmarshalBinary(data []byte) error {
	parsed, err := stream.Decode(data, ReadNotificationConfig)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c *NotificationConfig) MarshalJSON() ([]byte, error) {
	return xcontent.Marshal(c, false)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *NotificationConfig) UnmarshalJSON(data []byte) error {
	parsed, err := xcontent.Unmarshal(data, ParseNotificationConfig)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}
