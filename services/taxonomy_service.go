package services

import (
	"strings"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
)

// TaxonomyInfo describes one of the five nutrient taxonomies so the
// aggregator, resolver and requirement calculator can run one generic
// code path instead of five copy-pasted ones.
type TaxonomyInfo struct {
	Type             string // tag used in API payloads and log keys
	Table            string
	RequirementTable string
	RequirementFK    string
	MappingFK        string // column on nutrient_mappings
	CodePrefix       string // prefix on this table's codes, stripped to reach the generic code (MIN_FE -> FE)
	GenericPrefix    string // prefix the generic nutrient rows add to this table's codes (LEU -> AMINO_LEU)
	DefaultUnit      string // overrides the entity unit column when set
}

// Resolution order matters: first match wins, and generic macro
// nutrients are searched last.
var Taxonomies = []TaxonomyInfo{
	{Type: "vitamin", Table: "vitamins", RequirementTable: "user_vitamin_requirements", RequirementFK: "vitamin_id", MappingFK: "vitamin_id"},
	{Type: "mineral", Table: "minerals", RequirementTable: "user_mineral_requirements", RequirementFK: "mineral_id", MappingFK: "mineral_id", CodePrefix: "MIN_"},
	{Type: "fiber", Table: "fibers", RequirementTable: "user_fiber_requirements", RequirementFK: "fiber_id", MappingFK: "fiber_id"},
	{Type: "fatty_acid", Table: "fatty_acids", RequirementTable: "user_fatty_acid_requirements", RequirementFK: "fatty_acid_id", MappingFK: "fatty_acid_id"},
	{Type: "amino_acid", Table: "amino_acids", RequirementTable: "user_amino_requirements", RequirementFK: "amino_acid_id", MappingFK: "amino_acid_id", GenericPrefix: "AMINO_", DefaultUnit: "mg"},
}

func TaxonomyByType(t string) *TaxonomyInfo {
	for i := range Taxonomies {
		if Taxonomies[i].Type == t {
			return &Taxonomies[i]
		}
	}
	return nil
}

// unitSelect returns the SQL expression for the entity's unit. The
// amino acid table has no unit column; everything there is mg.
func (t *TaxonomyInfo) unitSelect() string {
	if t.DefaultUnit != "" {
		return "'" + t.DefaultUnit + "' AS unit"
	}
	return "unit"
}

// codeMatchExpr rewrites the taxonomy code column into its generic
// nutrient form so it can be compared to UPPER(nutrient_code). The
// prefix direction differs per taxonomy: mineral codes carry MIN_ that
// the generic side lacks, amino codes lack the AMINO_ the generic side
// carries.
func (t *TaxonomyInfo) codeMatchExpr(col string) string {
	switch {
	case t.CodePrefix != "":
		return "UPPER(REPLACE(" + col + ", '" + t.CodePrefix + "', ''))"
	case t.GenericPrefix != "":
		return "'" + t.GenericPrefix + "' || UPPER(" + col + ")"
	}
	return "UPPER(" + col + ")"
}

type TaxonomyEntity struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	HexColor    string `json:"hex_color"`
	HomeDisplay bool   `json:"home_display"`
}

func ListTaxonomyEntities(tax *TaxonomyInfo, limit int) ([]TaxonomyEntity, error) {
	var rows []TaxonomyEntity
	q := config.DB.Table(tax.Table).
		Select("id, code, name, " + tax.unitSelect() + ", hex_color, home_display").
		Where("deleted_at IS NULL").
		Order("name")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Scan(&rows).Error
	return rows, err
}

func GetTaxonomyEntity(tax *TaxonomyInfo, id uint) (*TaxonomyEntity, error) {
	var row TaxonomyEntity
	err := config.DB.Table(tax.Table).
		Select("id, code, name, "+tax.unitSelect()+", hex_color, home_display").
		Where("id = ? AND deleted_at IS NULL", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

// ResolvedNutrient identifies where an incoming nutrient code landed in
// the combined search space.
type ResolvedNutrient struct {
	NutrientID   uint   `json:"nutrient_id"`
	NutrientType string `json:"nutrient_type"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
}

// ResolveNutrientCode searches the five taxonomies in order, then the
// generic nutrient table (excluding AMINO_-prefixed rows so amino codes
// cannot resolve twice). Returns nil, not an error, when nothing
// matches: callers skip the contribution.
func ResolveNutrientCode(code string) (*ResolvedNutrient, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	for i := range Taxonomies {
		tax := &Taxonomies[i]
		var row ResolvedNutrient
		// Accept both spellings of the code: the entity form (MIN_FE,
		// LEU) and the generic form (FE, AMINO_LEU).
		err := config.DB.Table(tax.Table).
			Select("id AS nutrient_id, code, name, "+tax.unitSelect()).
			Where("deleted_at IS NULL").
			Where("UPPER(code) = ? OR "+tax.codeMatchExpr("code")+" = ?", code, code).
			Limit(1).
			Scan(&row).Error
		if err != nil {
			return nil, err
		}
		if row.NutrientID != 0 {
			row.NutrientType = tax.Type
			return &row, nil
		}
	}

	var row ResolvedNutrient
	err := config.DB.Table("nutrients").
		Select("id AS nutrient_id, nutrient_code AS code, name, unit").
		Where("deleted_at IS NULL").
		Where("UPPER(nutrient_code) = ? AND nutrient_code NOT LIKE 'AMINO_%'", code).
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.NutrientID == 0 {
		return nil, nil
	}
	row.NutrientType = "macro"
	return &row, nil
}

// ResolveNutrientID is the id-keyed variant, same search order.
func ResolveNutrientID(id uint) (*ResolvedNutrient, error) {
	if id == 0 {
		return nil, nil
	}
	for i := range Taxonomies {
		tax := &Taxonomies[i]
		var row ResolvedNutrient
		err := config.DB.Table(tax.Table).
			Select("id AS nutrient_id, code, name, "+tax.unitSelect()).
			Where("id = ? AND deleted_at IS NULL", id).
			Limit(1).
			Scan(&row).Error
		if err != nil {
			return nil, err
		}
		if row.NutrientID != 0 {
			row.NutrientType = tax.Type
			return &row, nil
		}
	}
	var row ResolvedNutrient
	err := config.DB.Table("nutrients").
		Select("id AS nutrient_id, nutrient_code AS code, name, unit").
		Where("id = ? AND deleted_at IS NULL AND nutrient_code NOT LIKE 'AMINO_%'", id).
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.NutrientID == 0 {
		return nil, nil
	}
	row.NutrientType = "macro"
	return &row, nil
}

// TopFoodSource is a food ranked by how much of a taxonomy entity it
// carries, resolved through NutrientMapping with its conversion factor.
type TopFoodSource struct {
	FoodID uint    `json:"food_id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

func TopFoodsForEntity(tax *TaxonomyInfo, entityID uint, limit int) ([]TopFoodSource, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []TopFoodSource
	err := config.DB.Table("nutrient_mappings m").
		Select("f.id AS food_id, f.name, SUM(fn.amount_per_100g * m.factor) AS amount, MIN(n.unit) AS unit").
		Joins("JOIN food_nutrients fn ON fn.nutrient_id = m.nutrient_id").
		Joins("JOIN nutrients n ON n.id = fn.nutrient_id").
		Joins("JOIN foods f ON f.id = fn.food_id").
		Where("m."+tax.MappingFK+" = ? AND m.deleted_at IS NULL", entityID).
		Group("f.id, f.name").
		Order("amount DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
