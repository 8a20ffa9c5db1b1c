package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"leave-management-api/models"
)

// DirectoryLookup resolves identities, section rosters and role mailboxes.
// Section is always an explicit directory attribute, never derived from the
// username. hod and principal are singleton roles: EmailForRole returns the
// one resolvable address, or "" when the holder has no email on file.
type DirectoryLookup interface {
	ResolveUser(username string) (*models.User, error)
	EmailsForSectionStaff(section string) ([]string, error)
	EmailForRole(role string) (string, error)
}

type gormDirectory struct {
	db *gorm.DB
}

// NewDirectory returns the users-table backed DirectoryLookup.
func NewDirectory(db *gorm.DB) DirectoryLookup {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) ResolveUser(username string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve user %s: %w", username, err)
	}
	return &user, nil
}

func (d *gormDirectory) EmailsForSectionStaff(section string) ([]string, error) {
	var emails []string
	err := d.db.Model(&models.User{}).
		Where("role = ? AND section = ? AND email <> ''", models.RoleStaff, section).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list staff emails for section %s: %w", section, err)
	}
	return emails, nil
}

func (d *gormDirectory) EmailForRole(role string) (string, error) {
	var user models.User
	err := d.db.Where("role = ? AND email <> ''", role).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve %s mailbox: %w", role, err)
	}
	return user.Email, nil
}
