package user

type User struct {
	ID       int64  `gorm:"primaryKey"`
	UniqueID string `gorm:"column:unique_id;uniqueIndex;not null"`
	Name     string `gorm:"column:name;not null"`
	Role     string `gorm:"column:role;not null;default:driver"`
}

func (User) TableName() string {
	return "users"
}
