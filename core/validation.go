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

import "fmt"

// ValidateMaterialRecord validates a MaterialRecord according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Numeric properties must not be negative (0 means "not published")
//   - SustainabilityScore must be between 0 and 10
//
// NOT validated (populated later):
//   - Vector (can be empty until the ingestion pipeline runs)
//   - ID (0 is valid before content-based assignment)
func ValidateMaterialRecord(record *MaterialRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidMaterialRecord)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMaterialRecord, ErrEmptyMaterialName)
	}

	properties := map[string]float64{
		"density":                   record.Density,
		"tensile strength ultimate": record.TensileUltimate,
		"tensile strength yield":    record.TensileYield,
		"modulus of elasticity":     record.Modulus,
		"thermal conductivity":      record.ThermalConductivity,
		"cost per kg":               record.CostPerKg,
	}
	for name, value := range properties {
		if value < 0 {
			return fmt.Errorf("%w: %w: %s", ErrInvalidMaterialRecord, ErrNegativeProperty, name)
		}
	}

	if record.SustainabilityScore < 0 || record.SustainabilityScore > 10 {
		return fmt.Errorf("%w: %w", ErrInvalidMaterialRecord, ErrSustainabilityOutOfRange)
	}

	return nil
}
