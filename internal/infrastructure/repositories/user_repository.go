package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Shaxzodbek16/clot/domain"
)

// maxSlugRetries bounds the suffix probe when concurrent creations race on
// the same base slug. The unique index is the arbiter; a duplicate error
// moves the probe to the next suffix.
const maxSlugRetries = 10

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db      *gorm.DB
	phoneRe *regexp.Regexp
}

// NewUserRepository creates a new user repository. The phone regexp is
// re-checked at write time, independent of boundary validation.
func NewUserRepository(db *gorm.DB, phoneRe *regexp.Regexp) domain.UserRepository {
	return &UserRepositoryImpl{db: db, phoneRe: phoneRe}
}

// Create implements domain.UserRepository. Slug assignment is an explicit
// step here: the base slug derives from phone number and first name, and
// colliding candidates get "-1", "-2", ... suffixes until an unused slug is
// found.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	if !r.phoneRe.MatchString(user.PhoneNumber) {
		return fmt.Errorf("%w: invalid phone number format", domain.ErrValidation)
	}
	if user.FirstName == "" {
		return fmt.Errorf("%w: first name is required", domain.ErrValidation)
	}
	if user.Gender == "" {
		user.Gender = domain.GenderMale
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}

	base := slug.Make(user.PhoneNumber + "-" + user.FirstName)

	candidate := base
	for i := 0; i < maxSlugRetries; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}

		var count int64
		if err := r.db.WithContext(ctx).Model(&DBUser{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		user.Slug = candidate
		dbUser := userToDB(user)
		err := r.db.WithContext(ctx).Create(dbUser).Error
		if err == nil {
			user.ID = dbUser.ID
			user.DateJoined = dbUser.DateJoined
			user.UpdatedAt = dbUser.UpdatedAt
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Either a concurrent writer took the slug or the phone number
			// already exists. Disambiguate and retry the slug probe.
			taken, exErr := r.ExistsByPhone(ctx, user.PhoneNumber)
			if exErr != nil {
				return exErr
			}
			if taken {
				return domain.ErrPhoneTaken
			}
			continue
		}
		return err
	}

	return fmt.Errorf("could not assign a unique slug for %q after %d attempts", base, maxSlugRetries)
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindBySlug implements domain.UserRepository
func (r *UserRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// ExistsByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("phone_number = ?", phone).Count(&count).Error
	return count > 0, err
}

// Update implements domain.UserRepository. Phone number and slug are
// immutable; updates never touch those columns.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"profile_image": user.ProfileImage,
			"age":           user.Age,
			"gender":        string(user.Gender),
			"is_active":     user.IsActive,
			"updated_at":    time.Now(),
		}).Error
}

// ActivateAndClearOTPs implements domain.UserRepository. Both writes run in
// one transaction: a concurrent reader never sees an active user with a
// stale passcode still present.
func (r *UserRepositoryImpl) ActivateAndClearOTPs(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBUser{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"is_active": true, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("user_id = ?", userID).Delete(&DBOneTimePassword{}).Error
	})
}

// ResetPasswordAndClearOTPs implements domain.UserRepository
func (r *UserRepositoryImpl) ResetPasswordAndClearOTPs(ctx context.Context, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBUser{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"password": passwordHash, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("user_id = ?", userID).Delete(&DBOneTimePassword{}).Error
	})
}

// Deactivate implements domain.UserRepository; doubles as soft delete.
func (r *UserRepositoryImpl) Deactivate(ctx context.Context, userID uint) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// orderings whitelists the List ordering keys.
var orderings = map[string]string{
	"date_joined":  "date_joined ASC",
	"-date_joined": "date_joined DESC",
	"first_name":   "first_name ASC",
	"-first_name":  "first_name DESC",
	"age":          "age ASC",
	"-age":         "age DESC",
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBUser{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("phone_number LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
	}
	if filter.Gender != "" {
		q = q.Where("gender = ?", string(filter.Gender))
	}
	if filter.Age != nil {
		q = q.Where("age = ?", *filter.Age)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := orderings[filter.Ordering]
	if !ok {
		order = orderings["-date_joined"]
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	var dbUsers []DBUser
	err := q.Order(order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&dbUsers).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *userToDomain(&dbUsers[i]))
	}
	return users, total, nil
}
