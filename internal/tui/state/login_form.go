package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Login form fields. The name field is only shown while signing up.
const (
	LoginFieldName = iota
	LoginFieldEmail
	LoginFieldPassword
	LoginFieldRemember
	LoginFieldSubmit
)

// LoginForm holds the login/signup screen.
type LoginForm struct {
	Name     textinput.Model
	Email    textinput.Model
	Password textinput.Model
	Remember bool
	Signup   bool

	FocusIndex int
}

// NewLoginForm creates the login form with the email field focused.
func NewLoginForm() *LoginForm {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 100
	name.Width = 40

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 200
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 200
	password.Width = 40

	f := &LoginForm{
		Name:     name,
		Email:    email,
		Password: password,
		Remember: true,
	}
	f.Focus(LoginFieldEmail)
	return f
}

// ToggleMode switches between login and signup.
func (f *LoginForm) ToggleMode() {
	f.Signup = !f.Signup
	if f.Signup {
		f.Focus(LoginFieldName)
	} else {
		f.Focus(LoginFieldEmail)
	}
}

func (f *LoginForm) fields() []int {
	if f.Signup {
		return []int{LoginFieldName, LoginFieldEmail, LoginFieldPassword, LoginFieldSubmit}
	}
	return []int{LoginFieldEmail, LoginFieldPassword, LoginFieldRemember, LoginFieldSubmit}
}

func (f *LoginForm) step(dir int) {
	fields := f.fields()
	idx := 0
	for i, field := range fields {
		if field == f.FocusIndex {
			idx = i
			break
		}
	}
	n := len(fields)
	f.Focus(fields[((idx+dir)%n+n)%n])
}

// NextField moves focus to the next visible field.
func (f *LoginForm) NextField() { f.step(1) }

// PrevField moves focus to the previous visible field.
func (f *LoginForm) PrevField() { f.step(-1) }

// Focus moves focus to the field at index.
func (f *LoginForm) Focus(index int) {
	f.FocusIndex = index
	f.Name.Blur()
	f.Email.Blur()
	f.Password.Blur()

	switch index {
	case LoginFieldName:
		f.Name.Focus()
	case LoginFieldEmail:
		f.Email.Focus()
	case LoginFieldPassword:
		f.Password.Focus()
	}
}

// Update updates the form models.
func (f *LoginForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			f.NextField()
			return nil
		case "shift+tab", "up":
			f.PrevField()
			return nil
		case "ctrl+n":
			f.ToggleMode()
			return nil
		}
		if f.FocusIndex == LoginFieldRemember {
			if s := msg.String(); s == " " || s == "space" {
				f.Remember = !f.Remember
			}
			return nil
		}
	}

	var cmd tea.Cmd
	switch f.FocusIndex {
	case LoginFieldName:
		f.Name, cmd = f.Name.Update(msg)
	case LoginFieldEmail:
		f.Email, cmd = f.Email.Update(msg)
	case LoginFieldPassword:
		f.Password, cmd = f.Password.Update(msg)
	}
	return cmd
}

// Values returns the trimmed name and email and the raw password.
func (f *LoginForm) Values() (name, email, password string) {
	return strings.TrimSpace(f.Name.Value()), strings.TrimSpace(f.Email.Value()), f.Password.Value()
}
