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

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"notifcommons/pkg/action"
	"notifcommons/pkg/model"
	"notifcommons/pkg/transport"
)

// Formats handled by the CLI on top of the serde registry.
const (
	formatFrame         = "frame"
	formatFrameDocument = "frame-json"
)

// kindSpec ties a model kind to an empty value for decoding and a sample
// value for the sample command.
type kindSpec struct {
	newValue func() model.BaseModel
	sample   func(now time.Time) (model.BaseModel, error)
}

var kindSpecs = map[transport.Kind]kindSpec{
	transport.KindAttachment: {
		newValue: func() model.BaseModel { return &model.Attachment{} },
		sample: func(time.Time) (model.BaseModel, error) {
			return sampleAttachment()
		},
	},
	transport.KindChannelMessage: {
		newValue: func() model.BaseModel { return &model.ChannelMessage{} },
		sample: func(time.Time) (model.BaseModel, error) {
			a, err := sampleAttachment()
			if err != nil {
				return nil, err
			}
			return model.NewChannelMessage("Build 1432 failed on main", lo.ToPtr("<p>Build <b>1432</b> failed on main</p>"), a)
		},
	},
	transport.KindNotificationConfig: {
		newValue: func() model.BaseModel { return &model.NotificationConfig{} },
		sample: func(time.Time) (model.BaseModel, error) {
			return sampleSlackConfig()
		},
	},
	transport.KindConfigInfo: {
		newValue: func() model.BaseModel { return &model.ConfigInfo{} },
		sample: func(now time.Time) (model.BaseModel, error) {
			return sampleSlackInfo(now)
		},
	},
	transport.KindConfigSearchResult: {
		newValue: func() model.BaseModel { return &model.ConfigSearchResult{} },
		sample: func(now time.Time) (model.BaseModel, error) {
			slack, err := sampleSlackInfo(now)
			if err != nil {
				return nil, err
			}
			hook, err := sampleWebhookInfo(now)
			if err != nil {
				return nil, err
			}
			return model.NewConfigSearchResultFromList([]*model.ConfigInfo{slack, hook})
		},
	},
	transport.KindPluginFeaturesRequest: {
		newValue: func() model.BaseModel { return &action.GetPluginFeaturesRequest{} },
		sample: func(time.Time) (model.BaseModel, error) {
			return action.NewGetPluginFeaturesRequest(false), nil
		},
	},
	transport.KindPluginFeaturesResponse: {
		newValue: func() model.BaseModel { return &action.GetPluginFeaturesResponse{} },
		sample: func(time.Time) (model.BaseModel, error) {
			return action.NewGetPluginFeaturesResponse(model.ChannelConfigTypes(), map[string]string{"tooltip_support": "true"})
		},
	},
}

func lookupKind(name string) (transport.Kind, kindSpec, error) {
	k, err := transport.ParseKind(name)
	if err != nil {
		return 0, kindSpec{}, fmt.Errorf("%w (known kinds: %s)", err, kindNames())
	}
	spec, ok := kindSpecs[k]
	if !ok {
		return 0, kindSpec{}, fmt.Errorf("no CLI support for kind %s", k)
	}
	return k, spec, nil
}

func kindNames() string {
	return strings.Join(lo.Map(transport.Kinds(), func(k transport.Kind, _ int) string { return k.String() }), ", ")
}

func sampleAttachment() (*model.Attachment, error) {
	return model.NewAttachment("build-1432.log", "base64", "QnVpbGQgZmFpbGVkCg==", lo.ToPtr("text/plain"))
}

func sampleSlackConfig() (*model.NotificationConfig, error) {
	slack, err := model.NewSlack("https://hooks.slack.com/services/T0000/B0000/XXXXXXXX")
	if err != nil {
		return nil, err
	}
	return model.NewNotificationConfig("ops-alerts", "Build failures for the ops team", model.ConfigTypeSlack, true, slack)
}

func sampleSlackInfo(now time.Time) (*model.ConfigInfo, error) {
	cfg, err := sampleSlackConfig()
	if err != nil {
		return nil, err
	}
	return model.NewConfigInfo(model.NewConfigID(), now, now, cfg)
}

func sampleWebhookInfo(now time.Time) (*model.ConfigInfo, error) {
	hook, err := model.NewWebhook("https://hooks.example.com/notify", map[string]string{"X-Token": "changeme"}, model.MethodPost)
	if err != nil {
		return nil, err
	}
	cfg, err := model.NewNotificationConfig("release-hook", "", model.ConfigTypeWebhook, false, hook)
	if err != nil {
		return nil, err
	}
	return model.NewConfigInfo(model.NewConfigID(), now, now, cfg)
}
