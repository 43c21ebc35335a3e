package entity

import "time"

// UserRole represents the account role of a user
type UserRole string

const (
	RoleUser          UserRole = "USER"
	RoleDoctor        UserRole = "DOCTOR"
	RoleDoctorPending UserRole = "DOCTOR_PENDING"
	RoleAdmin         UserRole = "ADMIN"
)

// UserStatus represents the account status of a user
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// User represents an account holder. A user may be elevated to a
// doctor through the onboarding flow; the doctor profile is a
// separate row referencing this one.
type User struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string     `gorm:"type:varchar(40);not null;index" json:"first_name"`
	LastName    string     `gorm:"type:varchar(40);not null;index" json:"last_name"`
	Username    string     `gorm:"type:varchar(40);uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"type:text;not null" json:"-"`
	DateOfBirth string     `gorm:"type:varchar(40);not null" json:"date_of_birth"`
	City        string     `gorm:"type:varchar(80);not null" json:"city"`
	State       string     `gorm:"type:varchar(40);not null" json:"state"`
	Country     string     `gorm:"type:varchar(40);not null" json:"country"`
	Timezone    string     `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	Role        UserRole   `gorm:"type:varchar(20);not null;default:'USER';index" json:"role"`
	Status      UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor         *Doctor         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
	Appointments   []Appointment   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
	Symptoms       []Symptom       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"symptoms,omitempty"`
	MedicalRecords []MedicalRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"medical_records,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsActive checks if the user is allowed to authenticate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsAdmin checks if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName returns the display name of the user
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
