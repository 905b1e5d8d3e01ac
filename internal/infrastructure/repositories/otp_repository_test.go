package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Shaxzodbek16/clot/domain"
)

func seedOTP(t *testing.T, db *gorm.DB, userID uint, code string, createdAt time.Time) {
	t.Helper()
	otp := &DBOneTimePassword{UserID: userID, Passcode: code, CreatedAt: createdAt}
	if err := db.Create(otp).Error; err != nil {
		t.Fatalf("failed to seed OTP: %v", err)
	}
}

func TestOTPRepositoryImpl_AddAndReplace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)

	user := seedUser(t, db, &DBUser{PhoneNumber: "+998901234567", FirstName: "Ali", Slug: "998901234567-ali"})

	t.Run("Add accumulates", func(t *testing.T) {
		if _, err := repo.Add(context.Background(), user.ID, "111111"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.Add(context.Background(), user.ID, "222222"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count, err := repo.CountForUser(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 passcodes, got %d", count)
		}
	})

	t.Run("Replace leaves exactly one", func(t *testing.T) {
		otp, err := repo.Replace(context.Background(), user.ID, "333333")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if otp.Passcode != "333333" {
			t.Errorf("unexpected passcode %q", otp.Passcode)
		}

		count, _ := repo.CountForUser(context.Background(), user.ID)
		if count != 1 {
			t.Errorf("expected exactly 1 passcode after replace, got %d", count)
		}
	})
}

func TestOTPRepositoryImpl_FindValid(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)

	user := seedUser(t, db, &DBUser{PhoneNumber: "+998901234567", FirstName: "Ali", Slug: "998901234567-ali"})
	other := seedUser(t, db, &DBUser{PhoneNumber: "+998909999999", FirstName: "Vali", Slug: "998909999999-vali"})

	now := time.Now()
	cutoff := now.Add(-5 * time.Minute)

	t.Run("code inside the window", func(t *testing.T) {
		seedOTP(t, db, user.ID, "123456", now.Add(-4*time.Minute-59*time.Second))

		found, err := repo.FindValid(context.Background(), "+998901234567", "123456", cutoff)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, found.ID)
		}
	})

	t.Run("code just past the window", func(t *testing.T) {
		seedOTP(t, db, user.ID, "654321", now.Add(-5*time.Minute-time.Second))

		if _, err := repo.FindValid(context.Background(), "+998901234567", "654321", cutoff); !errors.Is(err, domain.ErrOTPInvalidOrExpired) {
			t.Errorf("expected ErrOTPInvalidOrExpired, got %v", err)
		}
	})

	t.Run("wrong code", func(t *testing.T) {
		if _, err := repo.FindValid(context.Background(), "+998901234567", "000000", cutoff); !errors.Is(err, domain.ErrOTPInvalidOrExpired) {
			t.Errorf("expected ErrOTPInvalidOrExpired, got %v", err)
		}
	})

	t.Run("unknown phone", func(t *testing.T) {
		if _, err := repo.FindValid(context.Background(), "+998901111111", "123456", cutoff); !errors.Is(err, domain.ErrOTPInvalidOrExpired) {
			t.Errorf("expected ErrOTPInvalidOrExpired, got %v", err)
		}
	})

	t.Run("code belonging to another user", func(t *testing.T) {
		seedOTP(t, db, other.ID, "777777", now)

		if _, err := repo.FindValid(context.Background(), "+998901234567", "777777", cutoff); !errors.Is(err, domain.ErrOTPInvalidOrExpired) {
			t.Errorf("expected ErrOTPInvalidOrExpired, got %v", err)
		}
	})
}

// After forgot_password several codes may coexist within their own windows;
// any of them must validate.
func TestOTPRepositoryImpl_FindValid_MultipleOutstanding(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)

	user := seedUser(t, db, &DBUser{PhoneNumber: "+998901234567", FirstName: "Ali", Slug: "998901234567-ali"})

	now := time.Now()
	cutoff := now.Add(-5 * time.Minute)
	seedOTP(t, db, user.ID, "111111", now.Add(-3*time.Minute))
	seedOTP(t, db, user.ID, "222222", now.Add(-time.Minute))

	for _, code := range []string{"111111", "222222"} {
		if _, err := repo.FindValid(context.Background(), "+998901234567", code, cutoff); err != nil {
			t.Errorf("code %s: unexpected error: %v", code, err)
		}
	}
}

func TestOTPRepositoryImpl_DeleteAllForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)

	user := seedUser(t, db, &DBUser{PhoneNumber: "+998901234567", FirstName: "Ali", Slug: "998901234567-ali"})
	seedOTP(t, db, user.ID, "111111", time.Now())
	seedOTP(t, db, user.ID, "222222", time.Now())

	if err := repo.DeleteAllForUser(context.Background(), user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, _ := repo.CountForUser(context.Background(), user.ID)
	if count != 0 {
		t.Errorf("expected 0 passcodes, got %d", count)
	}

	// Deleting when none exist is not an error.
	if err := repo.DeleteAllForUser(context.Background(), user.ID); err != nil {
		t.Errorf("unexpected error on empty delete: %v", err)
	}
}
