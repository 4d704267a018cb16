// devtoken prints credentials for local development: a signed JWT for a
// principal, or a bcrypt hash for HOUSEKEEPING_TOKEN_HASH.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hotelops/internal/config"
	jwtsvc "hotelops/internal/pkg/jwt"
)

func main() {
	userID := flag.Int64("user", 1, "user id placed in the token")
	role := flag.String("role", "receptionist", "admin|manager|receptionist|housekeeping|guest")
	internal := flag.Bool("internal", false, "print an internal housekeeping token and its bcrypt hash instead of a JWT")
	token := flag.String("token", "", "internal token to hash (random when empty)")
	flag.Parse()

	if *internal {
		plain := strings.TrimSpace(*token)
		if plain == "" {
			plain = strings.ReplaceAll(uuid.NewString(), "-", "")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			fail(err)
		}
		fmt.Printf("token: %s\nHOUSEKEEPING_TOKEN_HASH=%s\n", plain, hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if cfg.IsProd() {
		fail(fmt.Errorf("refusing to mint tokens with APP_ENV=%s", cfg.AppEnv))
	}

	tok, err := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL).GenerateToken(*userID, *role)
	if err != nil {
		fail(err)
	}
	fmt.Println(tok)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "devtoken:", err)
	os.Exit(1)
}
