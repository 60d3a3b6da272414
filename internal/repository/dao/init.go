package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Registration{},
		&PassCounter{},
	); err != nil {
		return err
	}

	return seedPassCounter(db)
}
