// Command main runs the database seeder for Motorlot.
package main

import (
	"flag"
	"log"

	"motorlot/internal/config"
	"motorlot/internal/database"
	"motorlot/internal/seed"
)

func main() {
	numListings := flag.Int("listings", 60, "Number of listings to create")
	numInquiries := flag.Int("inquiries", 30, "Number of inquiries to create")
	shouldClean := flag.Bool("clean", true, "Clean listing and inquiry data before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d listings, %d inquiries, clean=%v\n", *numListings, *numInquiries, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumListings:  *numListings,
		NumInquiries: *numInquiries,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
