// Command main runs the database seeder for Blogly.
package main

import (
	"flag"
	"log"

	"blogly/internal/config"
	"blogly/internal/database"
	"blogly/internal/seed"
)

func main() {
	fixture := flag.Bool("fixture", true, "Seed the fixed example dataset")
	numUsers := flag.Int("users", 50, "Number of users to create (bulk mode)")
	numPosts := flag.Int("posts", 200, "Number of posts to create (bulk mode)")
	numTags := flag.Int("tags", 12, "Number of tags to create (bulk mode)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Both modes drop and recreate the schema before inserting.
	if *fixture {
		if err := seed.Fixture(db); err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
	} else {
		opts := seed.BulkOptions{
			NumUsers: *numUsers,
			NumPosts: *numPosts,
			NumTags:  *numTags,
		}
		if err := seed.Bulk(db, opts); err != nil {
			log.Fatalf("Bulk seeding failed: %v", err)
		}
		log.Printf("Bulk seeded: %d users, %d posts, %d tags", *numUsers, *numPosts, *numTags)
	}

	log.Println("Seeding complete.")
}
