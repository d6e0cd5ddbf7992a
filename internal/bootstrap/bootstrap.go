package bootstrap

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cliptube/backend/internal/entity"
	"github.com/cliptube/backend/pkg/logger"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Video{},
		&entity.Comment{},
		&entity.Post{},
		&entity.Playlist{},
		&entity.PlaylistVideo{},
		&entity.EngagementEdge{},
	)
}

// SeedDevUser creates a known account for local development. Production
// never calls this.
func SeedDevUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("username = ?", "dev").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.L().Info("dev user already exists, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("dev12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := entity.User{
		Username:     "dev",
		Email:        "dev@localhost",
		PasswordHash: string(hashed),
		FullName:     "Development User",
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	logger.L().Info("dev user seeded")
	return nil
}
