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


package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a material repository is not provided.
	ErrRepositoryRequired = errors.New("material repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrDatabaseFileEmpty is returned when the materials database contains
	// no materials.
	ErrDatabaseFileEmpty = errors.New("materials database contains no materials")

	// ErrMalformedDatabase is returned when the materials database cannot
	// be parsed.
	ErrMalformedDatabase = errors.New("malformed materials database")
)
