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

/*
Package model defines the notification domain objects shared between nodes
and the REST layer.

OVERVIEW:
=========
Every model has two independent wire forms and one set of field rules:

	Binary (pkg/stream):     fixed field order, presence flags, node-to-node RPC
	Document (pkg/xcontent): named fields, unknown fields skipped, REST/JSON
	Rules (pkg/validate):    checked on construction, read and parse alike

Each model X offers the same entry points:

	NewX(...)        build from values, validated
	ReadX(in)        rebuild from the binary form
	ParseX(p)        rebuild from the document form
	x.WriteStream    write the binary form
	x.ToDocument     write the document form

plus MarshalBinary/UnmarshalBinary and MarshalJSON/UnmarshalJSON so models
drop into encoding/json, gRPC codecs and the serde registry.

Models are value objects: fields are exported for reading, but nothing in this
module mutates a model after construction, and callers should not either.
*/
package model

import (
	"notifcommons/pkg/stream"
	"notifcommons/pkg/xcontent"
)

// BaseModel is the contract every notification model satisfies.
type BaseModel interface {
	stream.Writeable
	xcontent.ToDocument
	Validate() error
}
