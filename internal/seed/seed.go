// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"blogly/internal/database"
	"blogly/internal/models"

	"gorm.io/gorm"
)

// Reset drops and recreates the full schema, discarding all data.
func Reset(db *gorm.DB) error {
	migrator := db.Migrator()
	// Join table first so foreign keys never block the drops.
	for _, table := range []interface{}{"post_tags", &models.Post{}, &models.Tag{}, &models.User{}} {
		if migrator.HasTable(table) {
			if err := migrator.DropTable(table); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to recreate schema: %w", err)
	}
	return nil
}

// Fixture resets the schema and inserts the fixed example dataset. Each
// entity group commits in its own transaction because later groups reference
// identifiers assigned during earlier commits.
func Fixture(db *gorm.DB) error {
	if err := Reset(db); err != nil {
		return err
	}

	users := []models.User{
		{FirstName: "Doug", LastName: "Hooker", ImgURL: models.DefaultImgURL},
		{FirstName: "Kaily", LastName: "Redacted", ImgURL: models.DefaultImgURL},
		{FirstName: "Frank", LastName: "Falaffle", ImgURL: models.DefaultImgURL},
		{FirstName: "Bill", LastName: "Billiams", ImgURL: models.DefaultImgURL},
		{FirstName: "Leslie", LastName: "Knope", ImgURL: models.DefaultImgURL},
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&users).Error
	}); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	posts := []models.Post{
		{Title: "Hello World!", Content: "Man I'm really doing it!", UserID: users[0].ID},
		{Title: "Pawnee is great!", Content: "Everyone should live here!", UserID: users[4].ID},
		{Title: "Hey I'm Frank", Content: "I met Sly Stallone once.", UserID: users[2].ID},
		{Title: "Stop emailing me", Content: "I can't stand it!!!", UserID: users[3].ID},
		{Title: "Ann", Content: "Oh Ann, you beautiful opalescent tree shark.", UserID: users[4].ID},
		{Title: "Calzones are an abomination", Content: "Seriously Ben, stop talking about them.", UserID: users[4].ID},
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&posts).Error
	}); err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	tags := []models.Tag{
		{Name: "cool"},
		{Name: "fun"},
		{Name: "boring"},
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&tags).Error
	}); err != nil {
		return fmt.Errorf("failed to seed tags: %w", err)
	}

	// (post, tag) index pairs into the slices above.
	pairs := [][2]int{
		{3, 1}, {3, 0}, {0, 1}, {4, 1}, {5, 0}, {2, 2},
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		for _, pair := range pairs {
			post := posts[pair[0]]
			tag := tags[pair[1]]
			if err := tx.Model(&post).Association("Tags").Append(&models.Tag{ID: tag.ID}); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to seed post tags: %w", err)
	}

	log.Printf("Fixture seeded: %d users, %d posts, %d tags, %d associations",
		len(users), len(posts), len(tags), len(pairs))
	return nil
}
