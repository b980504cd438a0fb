/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

// Category is the report section a lab record belongs to.
type Category string

// Category values for the sections of the lab report.
const (
	CategoryVitalSigns         Category = "Vital Signs"
	CategoryBloodChemistry     Category = "Blood Chemistry"
	CategorySemenAnalysis      Category = "Semen Analysis"
	CategoryUrinalysis         Category = "Urinalysis"
	CategoryOncologyMarkers    Category = "Oncology Markers"
	CategoryInfectiousDisease  Category = "Infectious Disease"
	CategoryCoagulationStudies Category = "Coagulation Studies"
	CategoryHormonalStudies    Category = "Hormonal Studies"
	CategoryCompleteBloodCount Category = "Complete Blood Count"
)

// categorySlugs maps categories to the identifiers used in storage.
var categorySlugs = map[Category]string{
	CategoryVitalSigns:         "vital_signs",
	CategoryBloodChemistry:     "blood_chemistry",
	CategorySemenAnalysis:      "reproductive",
	CategoryUrinalysis:         "urinalysis",
	CategoryOncologyMarkers:    "oncology",
	CategoryInfectiousDisease:  "infectious",
	CategoryCoagulationStudies: "coagulation",
	CategoryHormonalStudies:    "hormonal",
	CategoryCompleteBloodCount: "hematology",
}

// Slug returns the storage identifier for the category, or "other".
func (c Category) Slug() string {
	if slug, ok := categorySlugs[c]; ok {
		return slug
	}

	return "other"
}

// HeaderMapping pairs a section header as printed in the report with the
// category it introduces.
type HeaderMapping struct {
	Header   string
	Category Category
}

// DefaultHeaders is the header table for the Spanish-language report layout.
// Order matters for substring matching: the first match wins.
var DefaultHeaders = []HeaderMapping{
	{Header: "Signos Vitales", Category: CategoryVitalSigns},
	{Header: "Análisis bioquímicos (sangre)", Category: CategoryBloodChemistry},
	{Header: "Análisis de semen", Category: CategorySemenAnalysis},
	{Header: "Análisis general de orina", Category: CategoryUrinalysis},
	{Header: "Diagnóstico de la oncopatología", Category: CategoryOncologyMarkers},
	{Header: "Diagnóstico de laboratorio de enfermedades infecciosas", Category: CategoryInfectiousDisease},
	{Header: "Estudios de coagulación sanguínea", Category: CategoryCoagulationStudies},
	{Header: "Estudios hormonales", Category: CategoryHormonalStudies},
	{Header: "Examen clínico general", Category: CategoryCompleteBloodCount},
}

// ParseCategory resolves a category label (as written to CSV) back to a
// Category. Unknown labels are returned as-is with ok set to false.
func ParseCategory(label string) (Category, bool) {
	c := Category(label)
	_, ok := categorySlugs[c]

	return c, ok
}
