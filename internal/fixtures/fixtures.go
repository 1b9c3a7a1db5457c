// Package fixtures loads the accounts and user directory served by the
// demo backend.
package fixtures

import (
	_ "embed"
	"os"
	"strings"

	"github.com/Rahulguptaid/ViewModelExample/internal/errors"
	"github.com/Rahulguptaid/ViewModelExample/pkg/network"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultData []byte

// Account is a sign-in credential known to the backend.
type Account struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	UserID   string `yaml:"user_id"`
}

// Entry is a directory record tagged with the category it is listed under.
type Entry struct {
	Category string `yaml:"category"`

	network.PropertyListUser `yaml:",inline"`
}

// Data is a complete fixture set.
type Data struct {
	Accounts []Account `yaml:"accounts"`
	Users    []Entry   `yaml:"users"`
}

// Default returns the built-in fixture set.
func Default() (*Data, error) {
	return Parse(defaultData)
}

// Load reads a fixture file. An empty path returns the built-in set.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E150").WithDetail(path).Wrap(err)
	}
	return Parse(raw)
}

// Parse decodes and checks a YAML fixture document.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, errors.New("E151").Wrap(err)
	}

	seen := make(map[string]bool, len(d.Accounts))
	for _, a := range d.Accounts {
		key := strings.ToLower(a.Email)
		if seen[key] {
			return nil, errors.New("E152").WithDetailf("%q is listed twice", a.Email)
		}
		seen[key] = true
	}
	return &d, nil
}

// Authenticate returns the account matching the credentials. Emails are
// compared case-insensitively, passwords exactly.
func (d *Data) Authenticate(email, password string) (Account, bool) {
	for _, a := range d.Accounts {
		if strings.EqualFold(a.Email, email) && a.Password == password {
			return a, true
		}
	}
	return Account{}, false
}

// UsersIn returns the records listed under category, in file order.
// An empty category returns every record.
func (d *Data) UsersIn(category string) []network.PropertyListUser {
	var out []network.PropertyListUser
	for _, e := range d.Users {
		if category == "" || strings.EqualFold(e.Category, category) {
			out = append(out, e.PropertyListUser)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (d *Data) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range d.Users {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}
