// Package models defines StudyMate's domain types: users and their
// credentials, activity records, AI results and navigation state.
package models

// User is the authenticated profile. Email identifies the user and is
// compared exactly.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Major string `json:"major,omitempty"`
}

// ProfileUpdate is a partial User: nil fields are left unchanged.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Major *string `json:"major,omitempty"`
}

// Apply returns u with the non-nil fields of p copied over it.
func (p ProfileUpdate) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Major != nil {
		u.Major = *p.Major
	}
	return u
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Major == nil
}

// Account is the persisted credential record behind a User. The password
// itself is never stored, only a random salt and the derived verifier.
type Account struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Major    string `json:"major,omitempty"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

// User strips the credential fields.
func (a Account) User() User {
	return User{Name: a.Name, Email: a.Email, Major: a.Major}
}
