package main

import (
	"log"

	"github.com/joho/godotenv"

	"leave-management-api/config"
	"leave-management-api/models"
)

// Seeds a demo directory so the portal is usable straight after a fresh
// migration. Existing usernames are left untouched.
func main() {
	log.Println("Starting directory seeding...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}

	config.InitDB()

	users := []models.User{
		{Username: "alice", Name: "Alice Kumar", Password: "alice123", Role: models.RoleStudent, Section: "A", Email: "alice@school.edu"},
		{Username: "bob", Name: "Bob Iyer", Password: "bob123", Role: models.RoleStudent, Section: "B", Email: "bob@school.edu"},
		{Username: "staff.a", Name: "Meena Rao", Password: "staff123", Role: models.RoleStaff, Section: "A", Email: "meena.rao@school.edu"},
		{Username: "staff.b", Name: "Ravi Menon", Password: "staff123", Role: models.RoleStaff, Section: "B", Email: "ravi.menon@school.edu"},
		{Username: "hod", Name: "Dr. Latha Nair", Password: "hod123", Role: models.RoleHOD, Email: "hod@school.edu"},
		{Username: "principal", Name: "Dr. S. Pillai", Password: "principal123", Role: models.RolePrincipal, Email: "principal@school.edu"},
		{Username: "admin", Name: "Office Admin", Password: "admin123", Role: models.RoleAdmin, Email: "office@school.edu"},
	}

	seeded := 0
	for _, user := range users {
		var existing models.User
		if err := config.DB.Where("username = ?", user.Username).First(&existing).Error; err == nil {
			log.Printf("Skipping %s: already present", user.Username)
			continue
		}
		if err := config.DB.Create(&user).Error; err != nil {
			log.Fatalf("failed to seed %s: %v", user.Username, err)
		}
		seeded++
	}

	log.Printf("Seeding complete: %d new directory entries", seeded)
}
