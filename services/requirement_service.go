package services

import (
	"errors"
	"time"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"
)

// ErrInsufficientProfile means age, sex or weight is missing. Callers
// must treat it as "cannot compute yet", never as a zero target.
var ErrInsufficientProfile = errors.New("insufficient profile data to compute requirement")

// Adjustments from simultaneously-active "avoid" conditions can sum
// well below -100%; the multiplier is floored so a recommended amount
// never goes negative.
const minMultiplier = 0.1

type Requirement struct {
	Base        float64 `json:"base"`
	Multiplier  float64 `json:"multiplier"`
	Recommended float64 `json:"recommended"`
	Unit        string  `json:"unit"`
}

type biometrics struct {
	age      int
	sex      string
	weightKg float64
}

func userBiometrics(user *models.User) (*biometrics, error) {
	if user.Sex == nil || user.Birthday == nil || user.WeightKg == nil {
		return nil, ErrInsufficientProfile
	}
	return &biometrics{
		age:      utils.CalculateAge(*user.Birthday),
		sex:      *user.Sex,
		weightKg: *user.WeightKg,
	}, nil
}

// baselineFor picks the population RDA row for an entity. Sex-specific
// rows beat sex-agnostic ones within the matching age bracket.
func baselineFor(tax *TaxonomyInfo, entityID uint, bio *biometrics) (*models.NutrientBaseline, error) {
	var rows []models.NutrientBaseline
	err := config.DB.
		Where("taxonomy = ? AND entity_id = ?", tax.Type, entityID).
		Where("(sex = '' OR sex = ?)", bio.sex).
		Where("age_min <= ? AND age_max >= ?", bio.age, bio.age).
		Order("sex DESC"). // non-empty sex sorts after '' ascending, so DESC puts it first
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ComputeRequirement derives the per-user daily target for one taxonomy
// entity and refreshes the cached User*Requirement row. A nil result
// with nil error means no baseline exists for this entity.
func ComputeRequirement(userID uint, tax *TaxonomyInfo, entityID uint) (*Requirement, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return computeRequirementForUser(&user, tax, entityID)
}

func computeRequirementForUser(user *models.User, tax *TaxonomyInfo, entityID uint) (*Requirement, error) {
	bio, err := userBiometrics(user)
	if err != nil {
		return nil, err
	}

	baseline, err := baselineFor(tax, entityID, bio)
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		return nil, nil
	}

	base := baseline.Amount
	if baseline.PerKg {
		base *= bio.weightKg
	}

	totalAdjustment, err := adjustmentForEntity(user.ID, tax, entityID)
	if err != nil {
		return nil, err
	}

	multiplier := 1 + totalAdjustment/100
	if multiplier < minMultiplier {
		multiplier = minMultiplier
	}

	unit := baseline.Unit
	if unit == "" {
		unit = tax.DefaultUnit
	}

	req := &Requirement{
		Base:        base,
		Multiplier:  multiplier,
		Recommended: base * multiplier,
		Unit:        unit,
	}
	if err := upsertRequirement(user.ID, tax, entityID, req); err != nil {
		return nil, err
	}
	return req, nil
}

// upsertRequirement writes the cache row keyed by (user_id, entity_id).
// Last writer wins; the value is a pure function of biometrics and
// active conditions, so a concurrent overwrite is harmless.
func upsertRequirement(userID uint, tax *TaxonomyInfo, entityID uint, req *Requirement) error {
	now := time.Now()
	return config.DB.Table(tax.RequirementTable).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: tax.RequirementFK}},
			DoUpdates: clause.AssignmentColumns([]string{
				"base", "multiplier", "recommended", "unit", "updated_at",
			}),
		}).
		Create(map[string]interface{}{
			"user_id":         userID,
			tax.RequirementFK: entityID,
			"base":            req.Base,
			"multiplier":      req.Multiplier,
			"recommended":     req.Recommended,
			"unit":            req.Unit,
			"created_at":      now,
			"updated_at":      now,
		}).Error
}

type cachedRequirement struct {
	Base        float64
	Multiplier  float64
	Recommended float64
	Unit        string
}

func cachedRequirementFor(userID uint, tax *TaxonomyInfo, entityID uint) (*cachedRequirement, error) {
	var rows []cachedRequirement
	err := config.DB.Table(tax.RequirementTable).
		Select("base, multiplier, recommended, unit").
		Where("user_id = ? AND "+tax.RequirementFK+" = ? AND deleted_at IS NULL", userID, entityID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// RecommendedValue is the per-user enrichment attached to taxonomy
// listing endpoints.
type RecommendedValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// RecommendedForUser reads the cache and falls back to a live compute
// when the cache is cold. Nil means not computable (missing profile or
// no baseline) and must surface as absence, not zero.
func RecommendedForUser(userID uint, tax *TaxonomyInfo, entityID uint) (*RecommendedValue, error) {
	cached, err := cachedRequirementFor(userID, tax, entityID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return &RecommendedValue{Value: cached.Recommended, Unit: cached.Unit}, nil
	}

	req, err := ComputeRequirement(userID, tax, entityID)
	if errors.Is(err, ErrInsufficientProfile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, nil
	}
	return &RecommendedValue{Value: req.Recommended, Unit: req.Unit}, nil
}

// RefreshUserRequirements recomputes the whole cache for one user
// across all five taxonomies. Entities without a baseline are skipped.
func RefreshUserRequirements(userID uint) (int, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return 0, err
	}
	if _, err := userBiometrics(&user); err != nil {
		return 0, err
	}

	refreshed := 0
	for i := range Taxonomies {
		tax := &Taxonomies[i]
		var ids []uint
		if err := config.DB.Table(tax.Table).
			Where("deleted_at IS NULL").
			Pluck("id", &ids).Error; err != nil {
			return refreshed, err
		}
		for _, id := range ids {
			req, err := computeRequirementForUser(&user, tax, id)
			if err != nil {
				return refreshed, err
			}
			if req != nil {
				refreshed++
			}
		}
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"refreshed": refreshed,
	}).Info("user nutrient requirements refreshed")
	return refreshed, nil
}

// InvalidateUserRequirements drops every cached requirement row for the
// user. The next read recomputes lazily from current biometrics and
// conditions.
func InvalidateUserRequirements(userID uint) error {
	for i := range Taxonomies {
		tax := &Taxonomies[i]
		if err := config.DB.Exec("DELETE FROM "+tax.RequirementTable+" WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
	}
	return nil
}
