package services

import (
	"errors"
	"time"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/utils"

	"github.com/sirupsen/logrus"
)

type ProfileInput struct {
	FullName       string   `json:"full_name"`
	Sex            *string  `json:"sex"`      // "male" | "female"
	Birthday       string   `json:"birthday"` // YYYY-MM-DD
	HeightCm       *float64 `json:"height_cm"`
	WeightKg       *float64 `json:"weight_kg"`
	ActivityFactor *float64 `json:"activity_factor"`
	Goal           string   `json:"goal"`
	Onboarded      *bool    `json:"onboarded"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	profile := map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"full_name":       user.FullName,
		"sex":             user.Sex,
		"height_cm":       user.HeightCm,
		"weight_kg":       user.WeightKg,
		"activity_factor": user.ActivityFactor,
		"goal":            user.Goal,
		"onboarded":       user.Onboarded,
	}
	if user.Birthday != nil {
		profile["birthday"] = user.Birthday.Format("2006-01-02")
		profile["age"] = utils.CalculateAge(*user.Birthday)
	}
	if user.HeightCm != nil && user.WeightKg != nil {
		if bmi, err := utils.CalculateBMI(*user.HeightCm, *user.WeightKg); err == nil {
			profile["bmi"] = bmi
			profile["bmi_category"] = utils.BMICategory(bmi)
		}
	}
	return profile, nil
}

// UpdateUserProfile persists biometric changes and invalidates the
// requirement cache when anything the calculator depends on moved.
func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	biometricsChanged := false

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Sex != nil {
		user.Sex = input.Sex
		biometricsChanged = true
	}
	if input.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", input.Birthday)
		if err != nil {
			return errors.New("invalid birthday format, use YYYY-MM-DD")
		}
		user.Birthday = &birthday
		biometricsChanged = true
	}
	if input.HeightCm != nil {
		user.HeightCm = input.HeightCm
	}
	if input.WeightKg != nil {
		user.WeightKg = input.WeightKg
		biometricsChanged = true
	}
	if input.ActivityFactor != nil {
		user.ActivityFactor = input.ActivityFactor
		biometricsChanged = true
	}
	if input.Goal != "" {
		user.Goal = input.Goal
		biometricsChanged = true
	}
	if input.Onboarded != nil {
		user.Onboarded = *input.Onboarded
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}

	if biometricsChanged {
		if err := InvalidateUserRequirements(userID); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("requirement cache invalidation failed")
		}
	}
	return nil
}

func FindUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
