package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestLogMealEntryValidation(t *testing.T) {
	f := seedFixture(t)
	day := testDay(t)

	tests := []struct {
		name     string
		foodID   uint
		mealType string
		weightG  float64
	}{
		{"unknown meal type", f.Beef.ID, "brunch", 100},
		{"zero weight", f.Beef.ID, "lunch", 0},
		{"negative weight", f.Beef.ID, "lunch", -50},
		{"missing food", 9999, "lunch", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LogMealEntry(f.User.ID, tt.foodID, tt.mealType, tt.weightG, day); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLogMealEntryMacroSnapshot(t *testing.T) {
	f := seedFixture(t)
	day := testDay(t)

	entry, err := LogMealEntry(f.User.ID, f.Beef.ID, "Lunch", 150, day)
	if err != nil {
		t.Fatalf("LogMealEntry: %v", err)
	}
	if entry.MealType != "lunch" {
		t.Errorf("meal type = %q, want normalized lunch", entry.MealType)
	}
	if !floatsClose(entry.Calories, 375) || !floatsClose(entry.Protein, 39) || !floatsClose(entry.Fat, 22.5) {
		t.Errorf("snapshot = %v/%v/%v, want 375/39/22.5", entry.Calories, entry.Protein, entry.Fat)
	}
	// Beef has no carb composition row; it contributes zero.
	if entry.Carbs != 0 {
		t.Errorf("carbs = %v, want 0", entry.Carbs)
	}
}

func TestListMealEntriesByDate(t *testing.T) {
	f := seedFixture(t)
	day := testDay(t)

	if _, err := LogMealEntry(f.User.ID, f.Beef.ID, "lunch", 100, day); err != nil {
		t.Fatalf("LogMealEntry: %v", err)
	}
	if _, err := LogMealEntry(f.User.ID, f.Orange.ID, "snack", 80, day); err != nil {
		t.Fatalf("LogMealEntry: %v", err)
	}

	entries, err := ListMealEntriesByDate(f.User.ID, day)
	if err != nil {
		t.Fatalf("ListMealEntriesByDate: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %d, want 2", len(entries))
	}
}

func TestDeleteMealEntry(t *testing.T) {
	f := seedFixture(t)
	day := testDay(t)

	entry, err := LogMealEntry(f.User.ID, f.Beef.ID, "dinner", 100, day)
	if err != nil {
		t.Fatalf("LogMealEntry: %v", err)
	}

	// A different user cannot delete it.
	if err := DeleteMealEntry(f.User.ID+1, entry.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("foreign delete err = %v, want ErrRecordNotFound", err)
	}

	if err := DeleteMealEntry(f.User.ID, entry.ID); err != nil {
		t.Fatalf("DeleteMealEntry: %v", err)
	}
	entries, err := ListMealEntriesByDate(f.User.ID, day)
	if err != nil {
		t.Fatalf("ListMealEntriesByDate: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries after delete = %d, want 0", len(entries))
	}

	if err := DeleteMealEntry(f.User.ID, entry.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("repeat delete err = %v, want ErrRecordNotFound", err)
	}
}
