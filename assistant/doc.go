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


// Package assistant answers engineering questions grounded in retrieved
// material documents.
//
// The Assistant condenses follow-up questions against chat history,
// retrieves supporting documents through the hybrid retriever, and asks
// the answer generator to respond using only that context. When retrieval
// finds nothing, the assistant answers with a fixed message instead of
// letting the model guess.
package assistant
