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
)

// ConfigType identifies the kind of channel a NotificationConfig describes.
// The ordinal is the binary form; the tag is the document form and also the
// field name under which the channel data is stored.
type ConfigType int

// Ordinals are part of the wire contract. Append only.
const (
	ConfigTypeNone ConfigType = iota
	ConfigTypeSlack
	ConfigTypeChime
	ConfigTypeWebhook
	ConfigTypeMicrosoftTeams

	configTypeCount
)

var configTypeTags = [configTypeCount]string{
	ConfigTypeNone:           "none",
	ConfigTypeSlack:          "slack",
	ConfigTypeChime:          "chime",
	ConfigTypeWebhook:        "webhook",
	ConfigTypeMicrosoftTeams: "microsoft_teams",
}

var configTypeByTag = lo.Associate(lo.Range(int(configTypeCount)), func(i int) (string, ConfigType) {
	return configTypeTags[i], ConfigType(i)
})

// Tag returns the document form of t.
func (t ConfigType) Tag() string {
	if t < 0 || t >= configTypeCount {
		return fmt.Sprintf("ConfigType(%d)", int(t))
	}
	return configTypeTags[t]
}

func (t ConfigType) String() string {
	return t.Tag()
}

// IsChannel reports whether t is a concrete channel type.
func (t ConfigType) IsChannel() bool {
	return t > ConfigTypeNone && t < configTypeCount
}

// ConfigTypeFromTag resolves a document tag. Unknown tags fail with
// xcontent.ErrParse.
func ConfigTypeFromTag(tag string) (ConfigType, error) {
	t, ok := configTypeByTag[tag]
	if !ok {
		return ConfigTypeNone, validate.OneOf(ConfigTypeTag, tag, configTypeTags[:]...)
	}
	return t, nil
}

// ChannelConfigTypes lists the tags of every concrete channel type.
func ChannelConfigTypes() []string {
	return lo.FilterMap(configTypeTags[:], func(tag string, i int) (string, bool) {
		return tag, ConfigType(i).IsChannel()
	})
}

func readConfigType(in *stream.Input) (ConfigType, error) {
	ordinal, err := in.ReadEnum(int(configTypeCount))
	if err != nil {
		return ConfigTypeNone, err
	}
	return ConfigType(ordinal), nil
}

// TotalHitsRelation tells whether a reported total hit count is exact or a
// lower bound.
type TotalHitsRelation int

// Ordinals are part of the wire contract.
const (
	EqualTo TotalHitsRelation = iota
	GreaterThanOrEqualTo

	totalHitsRelationCount
)

var totalHitsRelationNames = [totalHitsRelationCount]string{
	EqualTo:              "EQUAL_TO",
	GreaterThanOrEqualTo: "GREATER_THAN_OR_EQUAL_TO",
}

func (r TotalHitsRelation) String() string {
	if r < 0 || r >= totalHitsRelationCount {
		return fmt.Sprintf("TotalHitsRelation(%d)", int(r))
	}
	return totalHitsRelationNames[r]
}

// TotalHitsRelationFromName resolves the document form of a relation.
// Unknown names fail with xcontent.ErrParse.
func TotalHitsRelationFromName(name string) (TotalHitsRelation, error) {
	if err := validate.OneOf(TotalHitRelationTag, name, totalHitsRelationNames[:]...); err != nil {
		return EqualTo, err
	}
	_, idx, _ := lo.FindIndexOf(totalHitsRelationNames[:], func(n string) bool { return n == name })
	return TotalHitsRelation(idx), nil
}

func readTotalHitsRelation(in *stream.Input) (TotalHitsRelation, error) {
	ordinal, err := in.ReadEnum(int(totalHitsRelationCount))
	if err != nil {
		return EqualTo, err
	}
	return TotalHitsRelation(ordinal), nil
}
