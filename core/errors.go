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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidMaterialRecord indicates a MaterialRecord failed validation.
	ErrInvalidMaterialRecord = errors.New("invalid material record")

	// ErrEmptyMaterialName indicates the Name field is empty.
	ErrEmptyMaterialName = errors.New("material name cannot be empty")

	// ErrNegativeProperty indicates a numeric property is negative.
	ErrNegativeProperty = errors.New("numeric property cannot be negative")

	// ErrSustainabilityOutOfRange indicates a sustainability score outside 0-10.
	ErrSustainabilityOutOfRange = errors.New("sustainability score must be between 0 and 10")
)
