package models

type Canteen struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Location string `gorm:"not null" json:"location"`
}

type FoodCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type FoodItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `gorm:"not null" json:"price"`
	Image       string  `json:"image,omitempty"`
	CategoryID  uint    `gorm:"index;not null" json:"category_id"`
	CanteenID   uint    `gorm:"index;not null" json:"canteen_id"`
	Available   bool    `gorm:"not null;default:true" json:"available"`
}
