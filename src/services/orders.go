package services

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"sextant/src/models"
)

// WriteOrdersCSV exports generated orders to a CSV file for manual review or
// handoff to an execution system.
func WriteOrdersCSV(path string, orders []*models.Order) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create order file %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&orders, file); err != nil {
		return fmt.Errorf("failed to write order file %s: %w", path, err)
	}

	return nil
}
