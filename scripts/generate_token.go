package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kingrain94/waapify-relay/internal/config"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/middleware"
)

// generate_token mints a management API token for one tenant, signed with
// JWT_SECRET_KEY.
//
//	go run scripts/generate_token.go -user ops -company C1 -location L1 -roles user,admin
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	userID := flag.String("user", "", "User ID for the token")
	roles := flag.String("roles", string(domain.RoleUser), "Comma-separated list of roles (user, admin)")
	expirationHours := flag.Int("exp", 0, "Token lifetime in hours, JWT_EXPIRATION_HOURS when zero")
	companyID := flag.String("company", "", "CRM company ID the token is scoped to")
	locationID := flag.String("location", "", "CRM location ID, empty for a company-level install")
	flag.Parse()

	if *userID == "" || *companyID == "" {
		log.Fatal("-user and -company are required")
	}

	var roleList []string
	for _, role := range strings.Split(*roles, ",") {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		if !domain.IsValidRole(role) {
			log.Fatalf("Unknown role %q", role)
		}
		roleList = append(roleList, role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}
	if *expirationHours > 0 {
		cfg.JWTExpirationHours = *expirationHours
	}

	token, err := middleware.NewAuthMiddleware(cfg).GenerateToken(*userID, *companyID, *locationID, roleList)
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Println(token)
}
