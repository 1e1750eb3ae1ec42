// Bulk fake-data generation for demos and load testing. Fixture data lives in
// seed.go; these helpers produce arbitrary volumes of plausible content.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"blogly/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// BulkOptions configures the fake-data generator.
type BulkOptions struct {
	NumUsers int
	NumPosts int
	NumTags  int
	// MaxDays bounds how far in the past generated post timestamps spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts BulkOptions
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts BulkOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Bulk resets the schema and populates it with generated users, posts and
// tags, attaching a random tag set to every post.
func Bulk(db *gorm.DB, opts BulkOptions) error {
	if err := Reset(db); err != nil {
		return err
	}
	f := NewFactory(db, opts)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	tags, err := f.CreateTags(opts.NumTags)
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}
	if _, err := f.CreatePosts(users, tags, opts.NumPosts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	return nil
}

// CreateUsers persists n generated users.
func (f *Factory) CreateUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, models.User{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			ImgURL:    fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		})
	}
	if err := f.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateTags persists n generated tags.
func (f *Factory) CreateTags(n int) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, n)
	for i := 0; i < n; i++ {
		tags = append(tags, models.Tag{Name: gofakeit.Hobby()})
	}
	if err := f.db.Create(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CreatePosts persists n generated posts spread across the given users, each
// with up to three random tags.
func (f *Factory) CreatePosts(users []models.User, tags []models.Tag, n int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("cannot create posts without users")
	}
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		user := users[f.rand.Intn(len(users))]
		posts = append(posts, models.Post{
			Title:     gofakeit.Sentence(5),
			Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
			UserID:    user.ID,
			CreatedAt: f.pastTimestamp(),
		})
	}
	if err := f.db.Create(&posts).Error; err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		for i := range posts {
			attach := f.randomTagSubset(tags)
			if len(attach) == 0 {
				continue
			}
			if err := f.db.Model(&posts[i]).Association("Tags").Append(attach); err != nil {
				return nil, err
			}
		}
	}
	return posts, nil
}

// pastTimestamp returns a creation time spread over the configured window.
func (f *Factory) pastTimestamp() time.Time {
	daysBack := f.rand.Intn(f.opts.MaxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
}

func (f *Factory) randomTagSubset(tags []models.Tag) []models.Tag {
	count := f.rand.Intn(4) // 0..3 tags per post
	if count > len(tags) {
		count = len(tags)
	}
	picked := make([]models.Tag, 0, count)
	seen := make(map[uint]bool, count)
	for len(picked) < count {
		t := tags[f.rand.Intn(len(tags))]
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		picked = append(picked, models.Tag{ID: t.ID})
	}
	return picked
}
