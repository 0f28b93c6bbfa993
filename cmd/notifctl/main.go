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

// notifctl converts, validates and inspects notification models in every
// wire form: binary stream, JSON document, Avro and framed.
//
// Usage:
//
//	notifctl convert --kind channel_message --from json --to stream msg.json
//	notifctl validate --kind config_info --format json info.json
//	notifctl sample --kind config_search_result
//	notifctl frames capture.bin
//	notifctl version --verbose
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
