// Command seed populates the database with the built-in character
// directory and, optionally, fake guide submissions for development.
package main

import (
	"flag"
	"log"

	"guidepost/internal/config"
	"guidepost/internal/database"
	"guidepost/internal/seed"
)

func main() {
	numGuides := flag.Int("guides", 0, "number of fake guides to create")
	clean := flag.Bool("clean", false, "delete existing guides before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Characters(db); err != nil {
		log.Fatalf("Failed to seed characters: %v", err)
	}
	log.Printf("Seeded %d built-in characters", len(seed.BuiltInCharacters))

	if *numGuides > 0 || *clean {
		if err := seed.Guides(db, seed.Options{
			NumGuides:   *numGuides,
			ShouldClean: *clean,
		}); err != nil {
			log.Fatalf("Failed to seed guides: %v", err)
		}
		log.Printf("Seeded %d fake guides", *numGuides)
	}
}
