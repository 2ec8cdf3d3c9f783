// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package catalog

import (
	"sort"

	"github.com/davetashner/labtrack/internal/exam"
)

// Default returns the starter catalog used when no data exists yet.
func Default() *Catalog {
	return New([]exam.ParameterConfig{
		{Name: "COLESTEROLO", Unit: "mg/dL", Min: exam.Float(120), Max: exam.Float(200), Color: "orange", Decimals: exam.Int(0), Direction: exam.LowerBetter, Category: "Lipids"},
		{Name: "COLESTEROLO HDL", Unit: "mg/dL", Min: exam.Float(40), Max: exam.Float(60), Color: "orange", Decimals: exam.Int(0), Direction: exam.HigherBetter, Category: "Lipids"},
		{Name: "COLESTEROLO LDL", Unit: "mg/dL", Min: exam.Float(0), Max: exam.Float(130), Color: "orange", Decimals: exam.Int(0), Direction: exam.LowerBetter, Category: "Lipids"},
		{Name: "TRIGLICERIDI", Unit: "mg/dL", Min: exam.Float(50), Max: exam.Float(150), Color: "orange", Decimals: exam.Int(0), Direction: exam.LowerBetter, Category: "Lipids"},
		{Name: "GLUCOSIO", Unit: "mg/dL", Min: exam.Float(70), Max: exam.Float(100), Color: "blue", Decimals: exam.Int(0), Direction: exam.LowerBetter, Category: "Metabolism", Notes: "Fasting when possible."},
		{Name: "LEUCOCITI", Unit: "10^3/µL", Min: exam.Float(4), Max: exam.Float(10), Color: "blue", Decimals: exam.Int(1), Direction: exam.DirectionRange, Category: "Blood count"},
		{Name: "EMOGLOBINA", Unit: "g/dL", Min: exam.Float(13), Max: exam.Float(17), Color: "blue", Decimals: exam.Int(1), Direction: exam.DirectionRange, Category: "Blood count"},
		{Name: "VITAMINA D", Unit: "ng/mL", Min: exam.Float(30), Max: exam.Float(100), Color: "purple", Decimals: exam.Int(0), Direction: exam.HigherBetter, Category: "Vitamins"},
	})
}

func sortByName(params []exam.ParameterConfig) {
	sort.SliceStable(params, func(i, j int) bool {
		return params[i].Name < params[j].Name
	})
}
