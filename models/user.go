package models

// User is the minimal account record the calendar module needs. Registration,
// credentials and sessions live in the upstream identity service.
type User struct {
	BaseModel
	Name    string `gorm:"type:varchar(150);not null" json:"name"`
	Email   string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	IsAdmin bool   `gorm:"default:false" json:"is_admin"`
}
