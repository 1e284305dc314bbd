package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONBStringArray is a custom type for handling string arrays stored as JSON
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for JSONBStringArray", value)
	}

	return json.Unmarshal(bytes, a)
}

// GormDBDataType stores the array as jsonb on Postgres and as text elsewhere
func (JSONBStringArray) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

// SampleRecipe is an entry of the read-only sample catalog
type SampleRecipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Position     int              `gorm:"not null;default:0;index" json:"position"`
	Name         string           `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Ingredients  JSONBStringArray `gorm:"not null" json:"ingredients"`
	Instructions string           `gorm:"type:text" json:"instructions"`
	CookingTime  string           `gorm:"size:50" json:"cookingTime"`
	Difficulty   string           `gorm:"size:50" json:"difficulty"`
}

// TableName pins the table name
func (SampleRecipe) TableName() string {
	return "sample_recipes"
}

// BeforeCreate assigns an ID when none is set
func (r *SampleRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
