package tableview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jaidar2003/Mockachino/internal/api"
)

// ErrUnknownColumn is returned by ParseColumn for names outside Columns.
var ErrUnknownColumn = errors.New("unknown column")

// User is the row shape of the users table.
type User struct {
	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	Email       string `json:"email" yaml:"email"`
	DateOfBirth string `json:"date_of_birth" yaml:"date_of_birth"`
}

// UsersFromRecords decodes records into users. A record that does not have
// the expected shape becomes a User with whatever fields did decode.
func UsersFromRecords(records []api.Record) []User {
	users := make([]User, 0, len(records))
	for _, r := range records {
		var u User
		_ = r.Decode(&u)
		users = append(users, u)
	}
	return users
}

// Column is a sortable users table column.
type Column string

const (
	ColumnFirstName   Column = "first_name"
	ColumnLastName    Column = "last_name"
	ColumnEmail       Column = "email"
	ColumnDateOfBirth Column = "date_of_birth"
)

// Columns lists the table columns in display order.
var Columns = []Column{ColumnFirstName, ColumnLastName, ColumnEmail, ColumnDateOfBirth}

// ParseColumn maps a column key to a Column.
func ParseColumn(name string) (Column, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Columns {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %v)", ErrUnknownColumn, name, Columns)
}

// Title returns the column header label.
func (c Column) Title() string {
	switch c {
	case ColumnFirstName:
		return "First Name"
	case ColumnLastName:
		return "Last Name"
	case ColumnEmail:
		return "Email"
	case ColumnDateOfBirth:
		return "Date of Birth"
	}
	return string(c)
}

// Value returns the user's field for column c.
// date_of_birth is an opaque string; it only sorts chronologically when the
// backend uses a lexicographically ordered format such as ISO 8601.
func (u User) Value(c Column) string {
	switch c {
	case ColumnFirstName:
		return u.FirstName
	case ColumnLastName:
		return u.LastName
	case ColumnEmail:
		return u.Email
	case ColumnDateOfBirth:
		return u.DateOfBirth
	}
	return ""
}

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}
