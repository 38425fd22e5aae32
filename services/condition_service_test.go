package services

import (
	"testing"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"
)

func TestActivateConditionLifecycle(t *testing.T) {
	f := seedFixture(t)

	if _, err := ActivateCondition(f.User.ID, 9999); err == nil {
		t.Error("expected an error for an unknown condition")
	}

	uhc, err := ActivateCondition(f.User.ID, f.Diabetes.ID)
	if err != nil {
		t.Fatalf("ActivateCondition: %v", err)
	}
	if uhc.Status != "active" || uhc.DiagnosedAt.IsZero() {
		t.Errorf("record = %+v, want an active row with a diagnosis time", uhc)
	}

	// Re-activation reuses the row instead of inserting a duplicate.
	again, err := ActivateCondition(f.User.ID, f.Diabetes.ID)
	if err != nil {
		t.Fatalf("second ActivateCondition: %v", err)
	}
	if again.ID != uhc.ID {
		t.Errorf("second activation created row %d, want reuse of %d", again.ID, uhc.ID)
	}

	if err := MarkRecovered(f.User.ID, uhc.ID); err != nil {
		t.Fatalf("MarkRecovered: %v", err)
	}
	var reloaded models.UserHealthCondition
	if err := f.DB.First(&reloaded, uhc.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != "recovered" || reloaded.RecoveredAt == nil {
		t.Errorf("record = %+v, want recovered with a timestamp", reloaded)
	}

	// Relapse clears the recovery timestamp.
	relapsed, err := ActivateCondition(f.User.ID, f.Diabetes.ID)
	if err != nil {
		t.Fatalf("relapse: %v", err)
	}
	if relapsed.Status != "active" || relapsed.RecoveredAt != nil {
		t.Errorf("record = %+v, want active with RecoveredAt cleared", relapsed)
	}
}

func TestMarkRecoveredForeignRecord(t *testing.T) {
	f := seedFixture(t)

	uhc, err := ActivateCondition(f.User.ID, f.Diabetes.ID)
	if err != nil {
		t.Fatalf("ActivateCondition: %v", err)
	}
	if err := MarkRecovered(f.User.ID+1, uhc.ID); err == nil {
		t.Error("expected an error marking another user's record")
	}
}

func TestGetAdjustedRDA(t *testing.T) {
	f := seedFixture(t)

	// Inactive conditions contribute nothing.
	adjustments, err := GetAdjustedRDA(f.User.ID)
	if err != nil {
		t.Fatalf("GetAdjustedRDA: %v", err)
	}
	if len(adjustments) != 0 {
		t.Fatalf("adjustments = %+v, want none before activation", adjustments)
	}

	uhc, err := ActivateCondition(f.User.ID, f.Diabetes.ID)
	if err != nil {
		t.Fatalf("ActivateCondition: %v", err)
	}

	adjustments, err = GetAdjustedRDA(f.User.ID)
	if err != nil {
		t.Fatalf("GetAdjustedRDA: %v", err)
	}
	if len(adjustments) != 1 {
		t.Fatalf("adjustments = %+v, want the single fiber effect", adjustments)
	}
	adj := adjustments[0]
	if adj.NutrientCode != "FIBTG" || !floatsClose(adj.TotalAdjustment, 40) {
		t.Errorf("adjustment = %+v, want FIBTG +40", adj)
	}

	// Recovered conditions drop out again.
	if err := MarkRecovered(f.User.ID, uhc.ID); err != nil {
		t.Fatalf("MarkRecovered: %v", err)
	}
	adjustments, err = GetAdjustedRDA(f.User.ID)
	if err != nil {
		t.Fatalf("GetAdjustedRDA after recovery: %v", err)
	}
	if len(adjustments) != 0 {
		t.Errorf("adjustments = %+v, want none after recovery", adjustments)
	}
}

func TestAdjustmentsAddAcrossConditions(t *testing.T) {
	f := seedFixture(t)

	ibs := models.HealthCondition{Name: "IBS"}
	create(t, f.DB, &ibs)
	create(t, f.DB, &models.ConditionNutrientEffect{
		ConditionID: ibs.ID, NutrientID: f.NutFib.ID,
		EffectType: "increase", AdjustmentPercent: 20,
	})
	if _, err := ActivateCondition(f.User.ID, f.Diabetes.ID); err != nil {
		t.Fatalf("ActivateCondition diabetes: %v", err)
	}
	if _, err := ActivateCondition(f.User.ID, ibs.ID); err != nil {
		t.Fatalf("ActivateCondition ibs: %v", err)
	}

	adjustments, err := GetAdjustedRDA(f.User.ID)
	if err != nil {
		t.Fatalf("GetAdjustedRDA: %v", err)
	}
	if len(adjustments) != 1 || !floatsClose(adjustments[0].TotalAdjustment, 60) {
		t.Errorf("adjustments = %+v, want one summed FIBTG +60", adjustments)
	}
}

func TestListHealthConditions(t *testing.T) {
	f := seedFixture(t)

	conditions, err := ListHealthConditions()
	if err != nil {
		t.Fatalf("ListHealthConditions: %v", err)
	}
	if len(conditions) != 1 || conditions[0].ID != f.Diabetes.ID {
		t.Errorf("conditions = %+v, want the seeded one", conditions)
	}
}
