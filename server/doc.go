// Copyright 2025 Helios Engineering
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package server exposes the assistant over HTTP.
//
// Endpoints:
//
//	POST /query    answer a question with retrieved context
//	POST /export   download one material's data as json, csv, or txt
//	GET  /compare  side-by-side retrieval method comparison
//	GET  /healthz  liveness probe
//	GET  /stats    material count and index sizes
package server
