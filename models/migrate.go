package models

import "gorm.io/gorm"

// All returns every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Admin{},
		&Company{},
		&Job{},
		&Student{},
		&Grade{},
		&Internship{},
		&Resume{},
		&Application{},
	}
}

// AutoMigrate creates or updates the portal schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
