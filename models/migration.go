package models

import (
	"log"

	"github.com/josecastillovelasquez23456-dot/warehouse-mro/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&InventoryItem{}, &InventoryHistory{},
		&WarehouseSlot{},
		&Alert{},
		&PackageReceipt{}, &PostCount{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
