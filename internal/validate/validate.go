package validate

import (
	"errors"
	"fmt"
	"net/mail"
)

const (
	MinPasswordLen = 8
	MaxPasswordLen = 72
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinNameLen     = 2
	MaxNameLen     = 50
	MaxBioLen      = 160
	MaxPostLen     = 280
)

func SignUpForm(name, username, password, email string) error {
	var errs = []error{}

	errs = append(errs, Name(name))

	errs = append(errs, Username(username))

	errs = append(errs, Email(email))

	errs = append(errs, Password(password))

	return errors.Join(errs...)
}

func Password(password string) error {
	l := len(password)
	switch {
	case l == 0:
		return errors.New("empty password")
	case l < MinPasswordLen:
		return fmt.Errorf("password too short; min %d characters", MinPasswordLen)
	case l > MaxPasswordLen:
		return fmt.Errorf("password too long; max %d characters", MaxPasswordLen)
	}
	return nil
}

func Email(email string) error {
	if len(email) == 0 {
		return errors.New("empty email")
	}
	_, err := mail.ParseAddress(email)

	return err
}

func Username(username string) error {
	if l := len(username); l == 0 {
		return errors.New("empty username")
	} else if l < MinUsernameLen {
		return fmt.Errorf("username too short; min %d characters", MinUsernameLen)
	} else if l > MaxUsernameLen {
		return fmt.Errorf("username too long; max %d characters", MaxUsernameLen)
	}
	return nil
}

func Name(name string) error {
	if l := len(name); l < MinNameLen || l > MaxNameLen {
		return fmt.Errorf("name must be %d-%d characters", MinNameLen, MaxNameLen)
	}
	return nil
}

func Bio(bio string) error {
	if len(bio) > MaxBioLen {
		return fmt.Errorf("bio too long; max %d characters", MaxBioLen)
	}
	return nil
}

// PostContent checks the text of a plain post or reply. The caller trims first. Quotes
// skip the length cap and only go through Required.
func PostContent(content string) error {
	if err := Required(content); err != nil {
		return err
	}
	if len(content) > MaxPostLen {
		return fmt.Errorf("post too long; max %d characters", MaxPostLen)
	}
	return nil
}

func Required(content string) error {
	if len(content) == 0 {
		return errors.New("content is required")
	}
	return nil
}
