// Seeds the certification module catalog and a default admin account.
// Safe to re-run: existing rows are left untouched.
package main

import (
	"iris-api/config"
	"iris-api/models"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var defaultModules = []models.CertificationModule{
	{ModuleName: "Human Subjects Protection", Code: "HSP", IsCore: true, ExpirationMonths: 36, ModuleOrder: 1},
	{ModuleName: "Good Clinical Practice", Code: "GCP", IsCore: true, ExpirationMonths: 36, ModuleOrder: 2},
	{ModuleName: "Biosafety", Code: "BIO", IsCore: true, ExpirationMonths: 12, ModuleOrder: 3},
	{ModuleName: "Data Privacy and Security", Code: "DPS", IsCore: true, ExpirationMonths: 24, ModuleOrder: 4},
	{ModuleName: "Animal Care and Use", Code: "ACU", IsCore: false, ExpirationMonths: 36, ModuleOrder: 5},
	{ModuleName: "Responsible Conduct of Research", Code: "RCR", IsCore: false, ExpirationMonths: 0, ModuleOrder: 6},
}

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	// Seed modules
	for _, module := range defaultModules {
		var existing models.CertificationModule
		err := config.DB.Where("code = ?", module.Code).First(&existing).Error
		if err == nil {
			log.Printf("Module %s already exists, skipping\n", module.Code)
			continue
		}

		if err := config.DB.Create(&module).Error; err != nil {
			log.Printf("Failed to create module %s: %v\n", module.Code, err)
			continue
		}

		log.Printf("Created module %s (%s)\n", module.Code, module.ModuleName)
	}

	// Seed roles
	roles := []models.Role{
		{RoleID: 1, Role: "scientist"},
		{RoleID: 2, Role: "committee_member"},
		{RoleID: 3, Role: "admin"},
	}
	for _, role := range roles {
		var existing models.Role
		if err := config.DB.Where("role_id = ?", role.RoleID).First(&existing).Error; err == nil {
			continue
		}
		if err := config.DB.Create(&role).Error; err != nil {
			log.Printf("Failed to create role %s: %v\n", role.Role, err)
		}
	}

	// Seed default admin if ADMIN_EMAIL and ADMIN_PASSWORD are set
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin account")
		log.Println("Seeding completed!")
		return
	}

	var admin models.User
	if err := config.DB.Where("email = ?", adminEmail).First(&admin).Error; err == nil {
		log.Printf("Admin account %s already exists, skipping\n", adminEmail)
		log.Println("Seeding completed!")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	admin = models.User{
		UserFname: "System",
		UserLname: "Administrator",
		Email:     adminEmail,
		Password:  string(hashed),
		RoleID:    3, // admin
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin account:", err)
	}

	log.Printf("Created admin account %s\n", adminEmail)
	log.Println("Seeding completed!")
}
