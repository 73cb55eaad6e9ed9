package auth

import (
	"time"
)

// ============================
// 🔷 GORM Account Models

// User is a listener account that can request private events.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"user_id"`
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"firstname"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"lastname"`
	BirthDate    string    `gorm:"type:varchar(20)" json:"birthdate"`
	Gender       string    `gorm:"type:varchar(20)" json:"gender"`
	Country      string    `gorm:"type:varchar(100)" json:"country"`
	Address      string    `gorm:"type:text" json:"address"`
	Telephone    string    `gorm:"type:varchar(30)" json:"telephone"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Band is a performer account that owns public events and answers private
// event requests.
type Band struct {
	ID            uint      `gorm:"primaryKey" json:"band_id"`
	Username      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash  string    `gorm:"type:varchar(255);not null" json:"-"`
	BandName      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"band_name"`
	MusicGenres   string    `gorm:"type:varchar(255)" json:"music_genres"`
	Description   string    `gorm:"type:text" json:"band_description"`
	MembersNumber int       `json:"members_number"`
	FoundedYear   int       `json:"founded_year"`
	City          string    `gorm:"type:varchar(100)" json:"band_city"`
	Telephone     string    `gorm:"type:varchar(30)" json:"telephone"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Band) TableName() string { return "bands" }

// ============================
// 🟡 Requests

type RegisterUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	BirthDate string `json:"birthdate" binding:"required"`
	Gender    string `json:"gender" binding:"required"`
	Country   string `json:"country" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Telephone string `json:"telephone" binding:"required"`
}

type RegisterBandRequest struct {
	Username      string `json:"username" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	BandName      string `json:"band_name" binding:"required"`
	MusicGenres   string `json:"music_genres" binding:"required"`
	Description   string `json:"band_description" binding:"required"`
	MembersNumber int    `json:"members_number" binding:"required"`
	FoundedYear   int    `json:"founded_year" binding:"required"`
	City          string `json:"band_city" binding:"required"`
	Telephone     string `json:"telephone" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
