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
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notifcommons/pkg/stream"
	"notifcommons/pkg/xcontent"
)

// Independent objects share only package-level codec state: the validator,
// the document configs and the Avro schemas.
func TestConcurrentRoundTrips(t *testing.T) {
	for w := 0; w < 8; w++ {
		w := w
		t.Run(fmt.Sprintf("worker-%d", w), func(t *testing.T) {
			t.Parallel()
			for i := 0; i < 50; i++ {
				text := fmt.Sprintf("message %d/%d", w, i)
				msg, err := NewChannelMessage(text, lo.ToPtr("<b>"+text+"</b>"), mustAttachment(t, nil))
				require.NoError(t, err)

				viaBinary, err := stream.Decode(stream.Encode(msg), ReadChannelMessage)
				require.NoError(t, err)
				assert.Equal(t, msg, viaBinary)

				doc, err := xcontent.Marshal(msg, i%2 == 0)
				require.NoError(t, err)
				viaDocument, err := xcontent.Unmarshal(doc, ParseChannelMessage)
				require.NoError(t, err)
				assert.Equal(t, msg, viaDocument)

				data, err := msg.MarshalAvro()
				require.NoError(t, err)
				var viaAvro ChannelMessage
				require.NoError(t, viaAvro.UnmarshalAvro(data))
				assert.Equal(t, msg, &viaAvro)

				info, err := NewConfigInfo(fmt.Sprintf("id-%d-%d", w, i), time.UnixMilli(2000), time.UnixMilli(1000), mustSlackConfig(t))
				require.NoError(t, err)
				page, err := NewSearchResultsOf(ConfigListTag, info)
				require.NoError(t, err)
				back, err := stream.Decode(stream.Encode(page), func(in *stream.Input) (*SearchResults[*ConfigInfo], error) {
					return ReadSearchResults(in, ConfigListTag, ReadConfigInfo)
				})
				require.NoError(t, err)
				assert.Equal(t, page, back)
			}
		})
	}
}
