package directory

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Username string `yaml:"username" json:"username"`
	// Password is hashed on load and never kept.
	Password     string `yaml:"password" json:"-"`
	PasswordHash string `yaml:"passwordHash" json:"-"`
}

func (u User) Employee() timeclock.Employee {
	return timeclock.Employee{ID: u.ID, Name: u.Name}
}

// Static is an in-memory directory, immutable once built. It satisfies
// timeclock.Directory.
type Static struct {
	users []User
}

// NewStatic validates users and hashes any plaintext passwords.
func NewStatic(users []User) (*Static, error) {
	seenID := make(map[int]bool)
	seenName := make(map[string]bool)
	out := make([]User, 0, len(users))

	for _, u := range users {
		if u.ID <= 0 {
			return nil, fmt.Errorf("user %q: id must be positive", u.Username)
		}
		if seenID[u.ID] {
			return nil, fmt.Errorf("duplicate user id %d", u.ID)
		}
		key := strings.ToLower(u.Username)
		if key != "" && seenName[key] {
			return nil, fmt.Errorf("duplicate username %q", u.Username)
		}
		seenID[u.ID] = true
		seenName[key] = true

		if u.Password != "" {
			hash, err := HashPassword(u.Password)
			if err != nil {
				return nil, fmt.Errorf("user %q: %w", u.Username, err)
			}
			u.PasswordHash = hash
			u.Password = ""
		}
		out = append(out, u)
	}
	return &Static{users: out}, nil
}

func (s *Static) Lookup(id int) (timeclock.Employee, bool) {
	u := utils.Find(s.users, func(u User) bool { return u.ID == id })
	if u == nil {
		return timeclock.Employee{}, false
	}
	return u.Employee(), true
}

func (s *Static) Employees() []timeclock.Employee {
	return utils.Map(s.users, User.Employee)
}

// Authenticate matches the username case-insensitively and checks the
// password against the stored bcrypt hash.
func (s *Static) Authenticate(username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrInvalidCredentials
	}

	u := utils.Find(s.users, func(u User) bool { return strings.EqualFold(u.Username, username) })
	if u == nil || u.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return *u, nil
}

// HashPassword returns a bcrypt hash for storing in passwordHash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
