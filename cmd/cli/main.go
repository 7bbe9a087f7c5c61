package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Lcsmrct/AMBEAUTY/internal/models"
	"github.com/Lcsmrct/AMBEAUTY/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Salon service catalogue offered on the booking page.
var services = []string{
	"French Manucure",
	"Nail Art",
	"Pose Gel",
	"Extensions de Cils",
	"Soins des Pieds",
	"Tous services",
}

// Opening hours, with a midday break.
var hours = []string{
	"09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

func main() {
	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	adminUsername := addAdminCmd.String("username", "admin", "Username for the admin account")
	adminEmail := addAdminCmd.String("email", "", "Email for the admin account")
	adminPassword := addAdminCmd.String("password", "", "Password for the admin account")

	seedSlotsCmd := flag.NewFlagSet("seed-slots", flag.ExitOnError)
	seedDays := seedSlotsCmd.Int("days", 7, "Number of days to seed, starting tomorrow")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-admin' or 'seed-slots' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-admin":
		addAdminCmd.Parse(os.Args[2:])
		if *adminEmail == "" || *adminPassword == "" {
			fmt.Println("email and password are required")
			addAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		createAdmin(*adminUsername, *adminEmail, *adminPassword)
	case "seed-slots":
		seedSlotsCmd.Parse(os.Args[2:])
		if *seedDays < 1 {
			fmt.Println("days must be at least 1")
			os.Exit(1)
		}
		seedSlots(*seedDays)
	default:
		fmt.Println("expected 'add-admin' or 'seed-slots' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.SQLStore {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./ambeauty.db"
	}

	db, err := store.NewSQLStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running the cli before the server.
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func createAdmin(username, email, password string) {
	db := openStore()
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.CreateUser(admin); err != nil {
		if err == store.ErrConflict {
			log.Fatalf("An account with email %s already exists", email)
		}
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin '%s' (%s) created successfully.\n", username, email)
}

func seedSlots(days int) {
	db := openStore()
	defer db.Close()

	created := 0
	for day := 1; day <= days; day++ {
		date := time.Now().AddDate(0, 0, day).Format("2006-01-02")
		for _, hour := range hours {
			for _, service := range services {
				slot := &models.TimeSlot{
					ID:          uuid.NewString(),
					Date:        date,
					Time:        hour,
					Service:     service,
					IsAvailable: true,
					CreatedAt:   time.Now().UTC(),
				}
				err := db.CreateTimeSlot(slot)
				if err == store.ErrConflict {
					continue // already seeded
				}
				if err != nil {
					log.Fatalf("Failed to create slot %s %s %s: %v", date, hour, service, err)
				}
				created++
			}
		}
	}

	fmt.Printf("%d time slots created.\n", created)
}
