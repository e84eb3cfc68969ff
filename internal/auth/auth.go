package auth

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"api_dealership/internal/apperr"
)

// Role is the coarse permission level attached to an identity.
type Role string

const (
	RoleManager  Role = "manager"
	RoleSalesman Role = "salesman"
)

// Identity is the resolved caller after a successful credential check.
type Identity struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

// Verifier resolves credentials to an Identity. The credential store behind it
// is swappable; the rest of the system only sees this interface.
type Verifier interface {
	Verify(username, password string) (Identity, error)
}

// User is one roster entry. Password is hashed at load time; PasswordHash may
// be supplied instead when the roster already stores bcrypt hashes.
type User struct {
	Username     string `yaml:"username"`
	DisplayName  string `yaml:"display_name"`
	Role         Role   `yaml:"role"`
	Password     string `yaml:"password,omitempty"`
	PasswordHash string `yaml:"password_hash,omitempty"`
}

type userRecord struct {
	displayName string
	role        Role
	hash        []byte
}

// StaticVerifier verifies credentials against a fixed in-memory roster.
// Password comparison is bcrypt's, which runs in constant time, and unknown
// usernames are compared against a dummy hash so the two failure paths are
// indistinguishable by timing.
type StaticVerifier struct {
	users     map[string]userRecord
	dummyHash []byte
}

// NewStaticVerifier builds a verifier from a roster, hashing any plaintext
// passwords.
func NewStaticVerifier(users []User) (*StaticVerifier, error) {
	records := make(map[string]userRecord, len(users))
	for _, u := range users {
		if u.Username == "" {
			return nil, fmt.Errorf("auth: roster entry with empty username")
		}
		if u.Role != RoleManager && u.Role != RoleSalesman {
			return nil, fmt.Errorf("auth: unknown role %q for user %q", u.Role, u.Username)
		}
		var hash []byte
		switch {
		case u.PasswordHash != "":
			hash = []byte(u.PasswordHash)
		case u.Password != "":
			h, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("auth: hashing password for user %q: %w", u.Username, err)
			}
			hash = h
		default:
			return nil, fmt.Errorf("auth: user %q has neither password nor password_hash", u.Username)
		}
		records[u.Username] = userRecord{
			displayName: u.DisplayName,
			role:        u.Role,
			hash:        hash,
		}
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("static-verifier-dummy"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: generating dummy hash: %w", err)
	}
	return &StaticVerifier{users: records, dummyHash: dummy}, nil
}

// Verify checks username/password against the roster.
func (v *StaticVerifier) Verify(username, password string) (Identity, error) {
	rec, ok := v.users[username]
	if !ok {
		// Burn the same bcrypt work as the known-user path.
		_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(password))
		return Identity{}, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return Identity{}, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	return Identity{
		Username:    username,
		DisplayName: rec.displayName,
		Role:        rec.role,
	}, nil
}

type rosterFile struct {
	Users []User `yaml:"users"`
}

// Load reads a YAML roster file.
func Load(path string) ([]User, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("auth: reading roster %s: %w", path, err)
	}
	var f rosterFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("auth: parsing roster %s: %w", path, err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("auth: roster %s contains no users", path)
	}
	return f.Users, nil
}

// Defaults is the built-in roster used when no roster file is configured.
func Defaults() []User {
	return []User{
		{Username: "admin", DisplayName: "Admin Manager", Role: RoleManager, Password: "Manager@2024"},
		{Username: "john.smith", DisplayName: "John Smith", Role: RoleSalesman, Password: "JSmith@123"},
		{Username: "emma.wilson", DisplayName: "Emma Wilson", Role: RoleSalesman, Password: "EWilson@123"},
		{Username: "david.chen", DisplayName: "David Chen", Role: RoleSalesman, Password: "DChen@123"},
		{Username: "sarah.jones", DisplayName: "Sarah Jones", Role: RoleSalesman, Password: "SJones@123"},
	}
}
