package services

import "testing"

func TestResolveNutrientCode(t *testing.T) {
	seedFixture(t)

	tests := []struct {
		code     string
		wantType string
		wantCode string
	}{
		{"VITC", "vitamin", "VITC"},
		{"vitc", "vitamin", "VITC"},
		{"MIN_FE", "mineral", "MIN_FE"},
		{"FE", "mineral", "MIN_FE"},
		{"AMINO_LEU", "amino_acid", "LEU"},
		{"LEU", "amino_acid", "LEU"},
		{"FIBTG", "fiber", "FIBTG"},
		{"FAMS", "fatty_acid", "FAMS"},
		{"ENERC_KCAL", "macro", "ENERC_KCAL"},
		{"PROCNT", "macro", "PROCNT"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			resolved, err := ResolveNutrientCode(tt.code)
			if err != nil {
				t.Fatalf("ResolveNutrientCode(%q): %v", tt.code, err)
			}
			if resolved == nil {
				t.Fatalf("ResolveNutrientCode(%q) = nil, want %s", tt.code, tt.wantType)
			}
			if resolved.NutrientType != tt.wantType || resolved.Code != tt.wantCode {
				t.Errorf("got (%s, %s), want (%s, %s)",
					resolved.NutrientType, resolved.Code, tt.wantType, tt.wantCode)
			}
		})
	}
}

func TestResolveNutrientCodeUnknown(t *testing.T) {
	seedFixture(t)

	for _, code := range []string{"", "   ", "NOPE"} {
		resolved, err := ResolveNutrientCode(code)
		if err != nil {
			t.Fatalf("ResolveNutrientCode(%q): %v", code, err)
		}
		if resolved != nil {
			t.Errorf("ResolveNutrientCode(%q) = %+v, want nil", code, resolved)
		}
	}
}

func TestListTaxonomyEntities(t *testing.T) {
	seedFixture(t)

	rows, err := ListTaxonomyEntities(TaxonomyByType("vitamin"), 0)
	if err != nil {
		t.Fatalf("ListTaxonomyEntities: %v", err)
	}
	if len(rows) != 1 || rows[0].Code != "VITC" || rows[0].Unit != "mg" {
		t.Errorf("vitamins = %+v, want one VITC row in mg", rows)
	}

	// The amino table has no unit column; the default applies.
	rows, err = ListTaxonomyEntities(TaxonomyByType("amino_acid"), 0)
	if err != nil {
		t.Fatalf("ListTaxonomyEntities amino: %v", err)
	}
	if len(rows) != 1 || rows[0].Unit != "mg" {
		t.Errorf("amino acids = %+v, want the mg default unit", rows)
	}
}

func TestGetTaxonomyEntity(t *testing.T) {
	f := seedFixture(t)

	entity, err := GetTaxonomyEntity(TaxonomyByType("mineral"), f.Iron.ID)
	if err != nil {
		t.Fatalf("GetTaxonomyEntity: %v", err)
	}
	if entity == nil || entity.Code != "MIN_FE" {
		t.Fatalf("entity = %+v, want MIN_FE", entity)
	}

	entity, err = GetTaxonomyEntity(TaxonomyByType("mineral"), 9999)
	if err != nil {
		t.Fatalf("GetTaxonomyEntity missing: %v", err)
	}
	if entity != nil {
		t.Errorf("entity = %+v, want nil for an unknown id", entity)
	}
}

func TestTopFoodsForEntity(t *testing.T) {
	f := seedFixture(t)

	foods, err := TopFoodsForEntity(TaxonomyByType("mineral"), f.Iron.ID, 5)
	if err != nil {
		t.Fatalf("TopFoodsForEntity: %v", err)
	}
	if len(foods) != 1 {
		t.Fatalf("foods = %+v, want the single iron source", foods)
	}
	if foods[0].FoodID != f.Beef.ID || !floatsClose(foods[0].Amount, 2) {
		t.Errorf("top source = %+v, want beef at 2", foods[0])
	}
}

func TestTaxonomyByType(t *testing.T) {
	if tax := TaxonomyByType("vitamin"); tax == nil || tax.Table != "vitamins" {
		t.Errorf("vitamin lookup = %+v", tax)
	}
	if tax := TaxonomyByType("carbohydrate"); tax != nil {
		t.Errorf("unknown type = %+v, want nil", tax)
	}
}
