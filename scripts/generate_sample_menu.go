package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleMenu writes a menu document the seeder can load on first
// boot. Run it from the repository root; the server reads data/menu.json
// by default.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	menu := map[string]interface{}{
		"categories": []map[string]string{
			{"name": "Coffee", "description": "Espresso-based drinks and brews"},
			{"name": "Cold Drinks", "description": "Juices, sodas and iced drinks"},
			{"name": "Pastries", "description": "Freshly baked goods"},
			{"name": "Mains", "description": "Sandwiches and hot plates"},
		},
		"foodItems": []map[string]interface{}{
			{"name": "Espresso", "category": "Coffee", "description": "Single shot", "price": 60.00, "isAvailable": true},
			{"name": "Latte", "category": "Coffee", "description": "Espresso with steamed milk", "price": 100.00, "isAvailable": true},
			{"name": "Cappuccino", "category": "Coffee", "description": "Espresso with foamed milk", "price": 95.00, "isAvailable": true},
			{"name": "Iced Tea", "category": "Cold Drinks", "description": "House-brewed black tea", "price": 70.00, "isAvailable": true},
			{"name": "Fresh Orange Juice", "category": "Cold Drinks", "description": "Squeezed to order", "price": 85.00, "isAvailable": true},
			{"name": "Croissant", "category": "Pastries", "description": "Butter croissant", "price": 55.00, "isAvailable": true},
			{"name": "Blueberry Muffin", "category": "Pastries", "description": "Baked daily", "price": 65.00, "isAvailable": true},
			{"name": "Club Sandwich", "category": "Mains", "description": "Chicken, bacon, lettuce, tomato", "price": 150.00, "isAvailable": true},
			{"name": "Margherita Flatbread", "category": "Mains", "description": "Tomato, mozzarella, basil", "price": 140.00, "isAvailable": true},
			{"name": "Seasonal Soup", "category": "Mains", "description": "Ask staff for today's soup", "price": 90.00, "isAvailable": false},
		},
	}

	filePath := filepath.Join(dataDir, "menu.json")

	file, err := os.Create(filePath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(menu); err != nil {
		log.Fatalf("Failed to write menu: %v", err)
	}

	fmt.Printf("Created %s\n", filePath)
}
