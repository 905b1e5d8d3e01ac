package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shaxzodbek16/clot/domain"
)

var testPhoneRe = regexp.MustCompile(`^\+998[0-9]{9}$`)

// setupTestDB builds an in-memory database with the production schema.
// TranslateError must stay on: Create's slug probe depends on
// gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&DBUser{}, &DBOneTimePassword{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, user *DBUser) *DBUser {
	t.Helper()
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}
	if user.Gender == "" {
		user.Gender = "male"
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUserRepositoryImpl_Create(t *testing.T) {
	t.Run("assigns slug from phone and first name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db, testPhoneRe)

		user := &domain.User{
			PhoneNumber:  "+998901234567",
			PasswordHash: "hash",
			FirstName:    "Ali",
		}
		if err := repo.Create(context.Background(), user); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Slug != "998901234567-ali" {
			t.Errorf("expected slug 998901234567-ali, got %q", user.Slug)
		}
		if user.ID == 0 {
			t.Error("expected ID to be assigned")
		}
		if user.Gender != domain.GenderMale {
			t.Errorf("expected default gender male, got %q", user.Gender)
		}
		if user.DateJoined.IsZero() {
			t.Error("expected DateJoined to be set")
		}
	})

	t.Run("suffixes slug when base is taken", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db, testPhoneRe)

		// Occupy the base slug from another account.
		seedUser(t, db, &DBUser{PhoneNumber: "+998900000001", Slug: "998901234567-ali", FirstName: "Other"})

		user := &domain.User{PhoneNumber: "+998901234567", PasswordHash: "hash", FirstName: "Ali"}
		if err := repo.Create(context.Background(), user); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Slug != "998901234567-ali-1" {
			t.Errorf("expected slug 998901234567-ali-1, got %q", user.Slug)
		}
	})

	t.Run("probes past several taken suffixes", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db, testPhoneRe)

		seedUser(t, db, &DBUser{PhoneNumber: "+998900000001", Slug: "998901234567-ali", FirstName: "A"})
		seedUser(t, db, &DBUser{PhoneNumber: "+998900000002", Slug: "998901234567-ali-1", FirstName: "B"})

		user := &domain.User{PhoneNumber: "+998901234567", PasswordHash: "hash", FirstName: "Ali"}
		if err := repo.Create(context.Background(), user); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Slug != "998901234567-ali-2" {
			t.Errorf("expected slug 998901234567-ali-2, got %q", user.Slug)
		}
	})

	t.Run("duplicate phone number", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db, testPhoneRe)

		first := &domain.User{PhoneNumber: "+998901234567", PasswordHash: "hash", FirstName: "Ali"}
		if err := repo.Create(context.Background(), first); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second := &domain.User{PhoneNumber: "+998901234567", PasswordHash: "hash", FirstName: "Vali"}
		if err := repo.Create(context.Background(), second); !errors.Is(err, domain.ErrPhoneTaken) {
			t.Errorf("expected ErrPhoneTaken, got %v", err)
		}
	})

	t.Run("rejects malformed phone number", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db, testPhoneRe)

		user := &domain.User{PhoneNumber: "12345", PasswordHash: "hash", FirstName: "Ali"}
		if err := repo.Create(context.Background(), user); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("rejects empty first name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db, testPhoneRe)

		user := &domain.User{PhoneNumber: "+998901234567", PasswordHash: "hash"}
		if err := repo.Create(context.Background(), user); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestUserRepositoryImpl_Find(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, testPhoneRe)

	seeded := seedUser(t, db, &DBUser{
		PhoneNumber: "+998901234567",
		FirstName:   "Ali",
		Slug:        "998901234567-ali",
		IsActive:    true,
	})

	t.Run("by phone", func(t *testing.T) {
		user, err := repo.FindByPhone(context.Background(), "+998901234567")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != seeded.ID {
			t.Errorf("expected ID %d, got %d", seeded.ID, user.ID)
		}
	})

	t.Run("by slug", func(t *testing.T) {
		user, err := repo.FindBySlug(context.Background(), "998901234567-ali")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.PhoneNumber != "+998901234567" {
			t.Errorf("unexpected phone %q", user.PhoneNumber)
		}
	})

	t.Run("by ID", func(t *testing.T) {
		user, err := repo.FindByID(context.Background(), seeded.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Slug != "998901234567-ali" {
			t.Errorf("unexpected slug %q", user.Slug)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := repo.FindByPhone(context.Background(), "+998909999999"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FindByPhone: expected ErrNotFound, got %v", err)
		}
		if _, err := repo.FindBySlug(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FindBySlug: expected ErrNotFound, got %v", err)
		}
		if _, err := repo.FindByID(context.Background(), 9999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FindByID: expected ErrNotFound, got %v", err)
		}
	})
}

func TestUserRepositoryImpl_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, testPhoneRe)

	seeded := seedUser(t, db, &DBUser{
		PhoneNumber: "+998901234567",
		FirstName:   "Ali",
		Slug:        "998901234567-ali",
	})

	user := &domain.User{
		ID:          seeded.ID,
		PhoneNumber: "+998909999999", // must be ignored
		FirstName:   "Alisher",
		LastName:    "Karimov",
		Age:         30,
		Gender:      domain.GenderMale,
		Slug:        "tampered-slug", // must be ignored
		IsActive:    true,
	}
	if err := repo.Update(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.FindByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.FirstName != "Alisher" || stored.LastName != "Karimov" || stored.Age != 30 {
		t.Errorf("profile fields not applied: %+v", stored)
	}
	if stored.PhoneNumber != "+998901234567" {
		t.Errorf("phone number must be immutable, got %q", stored.PhoneNumber)
	}
	if stored.Slug != "998901234567-ali" {
		t.Errorf("slug must be immutable, got %q", stored.Slug)
	}
}

func TestUserRepositoryImpl_ActivateAndClearOTPs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, testPhoneRe)
	otpRepo := NewOTPRepository(db)

	seeded := seedUser(t, db, &DBUser{
		PhoneNumber: "+998901234567",
		FirstName:   "Ali",
		Slug:        "998901234567-ali",
	})

	if _, err := otpRepo.Add(context.Background(), seeded.ID, "111111"); err != nil {
		t.Fatalf("failed to seed OTP: %v", err)
	}
	if _, err := otpRepo.Add(context.Background(), seeded.ID, "222222"); err != nil {
		t.Fatalf("failed to seed OTP: %v", err)
	}

	if err := repo.ActivateAndClearOTPs(context.Background(), seeded.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.FindByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.IsActive {
		t.Error("expected user to be active")
	}

	count, err := otpRepo.CountForUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 outstanding passcodes, got %d", count)
	}

	t.Run("unknown user", func(t *testing.T) {
		if err := repo.ActivateAndClearOTPs(context.Background(), 9999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUserRepositoryImpl_ResetPasswordAndClearOTPs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, testPhoneRe)
	otpRepo := NewOTPRepository(db)

	seeded := seedUser(t, db, &DBUser{
		PhoneNumber:  "+998901234567",
		PasswordHash: "old-hash",
		FirstName:    "Ali",
		Slug:         "998901234567-ali",
	})
	if _, err := otpRepo.Add(context.Background(), seeded.ID, "333333"); err != nil {
		t.Fatalf("failed to seed OTP: %v", err)
	}

	if err := repo.ResetPasswordAndClearOTPs(context.Background(), seeded.ID, "new-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.FindByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.PasswordHash != "new-hash" {
		t.Errorf("expected new-hash, got %q", stored.PasswordHash)
	}

	count, _ := otpRepo.CountForUser(context.Background(), seeded.ID)
	if count != 0 {
		t.Errorf("expected 0 outstanding passcodes, got %d", count)
	}
}

func TestUserRepositoryImpl_Deactivate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, testPhoneRe)

	seeded := seedUser(t, db, &DBUser{
		PhoneNumber: "+998901234567",
		FirstName:   "Ali",
		Slug:        "998901234567-ali",
		IsActive:    true,
	})

	if err := repo.Deactivate(context.Background(), seeded.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), seeded.ID)
	if stored.IsActive {
		t.Error("expected user to be inactive")
	}

	if err := repo.Deactivate(context.Background(), 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, testPhoneRe)

	base := time.Now().Add(-time.Hour)
	seedUser(t, db, &DBUser{PhoneNumber: "+998900000001", FirstName: "Ali", Slug: "s1", Age: 25, Gender: "male", DateJoined: base})
	seedUser(t, db, &DBUser{PhoneNumber: "+998900000002", FirstName: "Bibi", Slug: "s2", Age: 30, Gender: "female", DateJoined: base.Add(time.Minute)})
	seedUser(t, db, &DBUser{PhoneNumber: "+998900000003", FirstName: "Davron", Slug: "s3", Age: 25, Gender: "male", DateJoined: base.Add(2 * time.Minute)})

	t.Run("default ordering is newest first", func(t *testing.T) {
		users, total, err := repo.List(context.Background(), domain.UserFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 3 || len(users) != 3 {
			t.Fatalf("expected 3 users, got total=%d len=%d", total, len(users))
		}
		if users[0].FirstName != "Davron" {
			t.Errorf("expected Davron first, got %q", users[0].FirstName)
		}
	})

	t.Run("filter by gender", func(t *testing.T) {
		users, total, err := repo.List(context.Background(), domain.UserFilter{Gender: domain.GenderFemale})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 1 || users[0].FirstName != "Bibi" {
			t.Errorf("expected only Bibi, got total=%d users=%+v", total, users)
		}
	})

	t.Run("filter by age", func(t *testing.T) {
		age := uint(25)
		_, total, err := repo.List(context.Background(), domain.UserFilter{Age: &age})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 2 {
			t.Errorf("expected 2 users of age 25, got %d", total)
		}
	})

	t.Run("search by phone fragment", func(t *testing.T) {
		_, total, err := repo.List(context.Background(), domain.UserFilter{Search: "0000002"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 1 {
			t.Errorf("expected 1 match, got %d", total)
		}
	})

	t.Run("ordering by first name", func(t *testing.T) {
		users, _, err := repo.List(context.Background(), domain.UserFilter{Ordering: "first_name"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if users[0].FirstName != "Ali" {
			t.Errorf("expected Ali first, got %q", users[0].FirstName)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		users, total, err := repo.List(context.Background(), domain.UserFilter{Page: 2, PageSize: 2, Ordering: "first_name"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
		if len(users) != 1 || users[0].FirstName != "Davron" {
			t.Errorf("expected second page to hold Davron, got %+v", users)
		}
	})

	t.Run("unknown ordering falls back to default", func(t *testing.T) {
		users, _, err := repo.List(context.Background(), domain.UserFilter{Ordering: "password"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if users[0].FirstName != "Davron" {
			t.Errorf("expected newest first, got %q", users[0].FirstName)
		}
	})
}
