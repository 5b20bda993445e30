package services

import (
	"sort"
	"strings"

	"PalmCare/models"
)

// labCatalog maps each orderable test to its fields and price.
var labCatalog = map[string]models.LabTest{
	"CBC": {Name: "CBC", Price: 25, Fields: []models.LabField{
		{Name: "Hemoglobin", Unit: "g/dL", Reference: "12-16"},
		{Name: "White Blood Cells", Unit: "x10^9/L", Reference: "4.5-11.0"},
		{Name: "Platelets", Unit: "x10^9/L", Reference: "150-400"},
	}},
	"Blood Glucose": {Name: "Blood Glucose", Price: 10, Fields: []models.LabField{
		{Name: "Fasting Glucose", Unit: "mg/dL", Reference: "70-99"},
	}},
	"Lipid Panel": {Name: "Lipid Panel", Price: 35, Fields: []models.LabField{
		{Name: "Total Cholesterol", Unit: "mg/dL", Reference: "<200"},
		{Name: "LDL", Unit: "mg/dL", Reference: "<100"},
		{Name: "HDL", Unit: "mg/dL", Reference: ">40"},
		{Name: "Triglycerides", Unit: "mg/dL", Reference: "<150"},
	}},
	"Urinalysis": {Name: "Urinalysis", Price: 15, Fields: []models.LabField{
		{Name: "pH", Reference: "4.5-8.0"},
		{Name: "Protein", Reference: "Negative"},
		{Name: "Glucose", Reference: "Negative"},
	}},
	"Liver Function": {Name: "Liver Function", Price: 40, Fields: []models.LabField{
		{Name: "ALT", Unit: "U/L", Reference: "7-56"},
		{Name: "AST", Unit: "U/L", Reference: "10-40"},
		{Name: "Bilirubin", Unit: "mg/dL", Reference: "0.1-1.2"},
	}},
	"Malaria Test": {Name: "Malaria Test", Price: 12, Fields: []models.LabField{
		{Name: "Parasites", Reference: "Negative"},
	}},
}

// LookupLabTest finds a catalog test by name, ignoring case, and returns a
// fresh copy of its template.
func LookupLabTest(name string) (models.LabTest, bool) {
	for key, test := range labCatalog {
		if strings.EqualFold(key, strings.TrimSpace(name)) {
			test.Fields = append([]models.LabField(nil), test.Fields...)
			return test, true
		}
	}
	return models.LabTest{}, false
}

// LabCatalog lists the orderable tests by name.
func LabCatalog() []models.LabTest {
	tests := make([]models.LabTest, 0, len(labCatalog))
	for name := range labCatalog {
		test, _ := LookupLabTest(name)
		tests = append(tests, test)
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].Name < tests[j].Name })
	return tests
}
