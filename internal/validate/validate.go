// Package validate implements the client-side field checks run before
// any network call. Server-side 4xx messages are rendered the same way,
// so every check returns a plain field->message map.
package validate

import (
	"regexp"
	"strings"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phoneRe    = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)
)

// Errors maps field names to user-facing messages. Empty means valid.
type Errors map[string]string

// OK reports whether no field failed.
func (e Errors) OK() bool { return len(e) == 0 }

// Username checks the account handle: 3-20 word characters.
func Username(errs Errors, username string) {
	switch {
	case strings.TrimSpace(username) == "":
		errs["username"] = "Username is required"
	case len(username) < 3:
		errs["username"] = "Username must be at least 3 characters"
	case len(username) > 20:
		errs["username"] = "Username cannot be more than 20 characters"
	case !usernameRe.MatchString(username):
		errs["username"] = "Username can only contain letters, numbers and underscores"
	}
}

// Name checks the display name.
func Name(errs Errors, name string) {
	switch {
	case strings.TrimSpace(name) == "":
		errs["name"] = "Name is required"
	case len(name) > 50:
		errs["name"] = "Name cannot be more than 50 characters"
	}
}

// Email checks the email address format.
func Email(errs Errors, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(email):
		errs["email"] = "Email is invalid"
	}
}

// Phone checks the phone number in E.164-ish form.
func Phone(errs Errors, phone string) {
	switch {
	case strings.TrimSpace(phone) == "":
		errs["phoneNumber"] = "Phone number is required"
	case !phoneRe.MatchString(phone):
		errs["phoneNumber"] = "Phone number is invalid (e.g. +1234567890)"
	}
}

// Password checks the password and its confirmation.
func Password(errs Errors, password, confirm string) {
	switch {
	case password == "":
		errs["password"] = "Password is required"
	case len(password) < 6:
		errs["password"] = "Password must be at least 6 characters"
	}
	switch {
	case confirm == "":
		errs["confirmPassword"] = "Please confirm your password"
	case password != confirm:
		errs["confirmPassword"] = "Passwords do not match"
	}
}

// DayEntry checks the mood-entry form fields.
func DayEntry(errs Errors, score int, high, low string) {
	if score < 1 || score > 10 {
		errs["score"] = "Score must be between 1 and 10"
	}
	if strings.TrimSpace(high) == "" {
		errs["high"] = "Please share your high point"
	}
	if strings.TrimSpace(low) == "" {
		errs["low"] = "Please share your low point"
	}
}

// Register runs all account-creation checks.
func Register(name, username, email, phone, password, confirm string) Errors {
	errs := Errors{}
	Username(errs, username)
	Name(errs, name)
	Email(errs, email)
	Phone(errs, phone)
	Password(errs, password, confirm)
	return errs
}

// Login runs the sign-in checks.
func Login(email, password string) Errors {
	errs := Errors{}
	Email(errs, email)
	if password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}
