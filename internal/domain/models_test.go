package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableName(t *testing.T) {
	if (Application{}).TableName() != "applications" {
		t.Fatalf("Application.TableName() = %q; want %q", (Application{}).TableName(), "applications")
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.IsValid() {
			t.Fatalf("listed status %q reported invalid", s)
		}
	}
	for _, s := range []Status{"", "ghosted", "Applied", "APPLIED", "offer "} {
		if s.IsValid() {
			t.Fatalf("status %q reported valid", s)
		}
	}
}

func TestApplicationUpdate_IsZero(t *testing.T) {
	if !(ApplicationUpdate{}).IsZero() {
		t.Fatal("zero update reported non-zero")
	}

	v := ""
	st := StatusOffer
	set := []ApplicationUpdate{
		{CompanyName: &v},
		{PositionTitle: &v},
		{Status: &st},
		{ApplicationDate: &v},
		{Notes: &v}, // clearing notes is still a change
	}
	for i, u := range set {
		if u.IsZero() {
			t.Fatalf("update %d with a set field reported zero", i)
		}
	}
}

func TestApplication_OwnerIdentity(t *testing.T) {
	a := &Application{OwnerID: "u1"}
	if a.OwnerIdentity() != "u1" {
		t.Fatalf("OwnerIdentity() = %q", a.OwnerIdentity())
	}
}

func TestMigration_Indexes_AndStatusCheck(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Application{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	if !m.HasTable(&Application{}) {
		t.Fatal("expected applications table to exist")
	}
	if !m.HasIndex(&Application{}, "idx_owner_created") {
		t.Fatal("expected index idx_owner_created on applications")
	}

	now := time.Now().UTC()
	a := &Application{
		ID:              "11111111-1111-1111-1111-111111111111",
		OwnerID:         "u1",
		CompanyName:     "Acme",
		PositionTitle:   "Engineer",
		Status:          StatusApplied,
		ApplicationDate: "2026-01-10",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("insert application: %v", err)
	}

	// The CHECK constraint rejects statuses outside the closed set.
	bad := &Application{
		ID:              "22222222-2222-2222-2222-222222222222",
		OwnerID:         "u1",
		CompanyName:     "Acme",
		PositionTitle:   "Engineer",
		Status:          Status("ghosted"),
		ApplicationDate: "2026-01-10",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Create(bad).Error; err == nil {
		t.Fatal("insert with invalid status succeeded; CHECK constraint missing")
	}

	// Notes stay NULL when absent.
	var got Application
	if err := db.First(&got, "id = ?", a.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Notes != nil {
		t.Fatalf("notes should be NULL, got %q", *got.Notes)
	}
}
