// Package models defines the persisted entities and the application error
// taxonomy shared across layers.
package models

// DefaultImgURL is the profile image applied when a user supplies none.
const DefaultImgURL = "https://www.pngkey.com/png/full/115-1150152_default-profile-picture-avatar-png-green.png"

// User owns posts. Deleting a user removes their posts and those posts'
// tag associations.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	ImgURL    string `gorm:"not null" json:"img_url"`
	Posts     []Post `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// FullName returns the display name, "FirstName LastName".
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
