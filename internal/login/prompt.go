package login

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// Prompter asks the user for input on the console.
//
// It implements auth.UserAuthenticator for the phone and code flow.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

var _ auth.UserAuthenticator = (*Prompter)(nil)

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Choose prints the login menu and returns the trimmed answer.
func (p *Prompter) Choose() (string, error) {
	fmt.Fprintln(p.out, "Choose login method:")
	fmt.Fprintln(p.out, "1. OTP (via phone number and code)")
	fmt.Fprintln(p.out, "2. QR code login")
	return p.ask("Enter your choice (1 or 2): ")
}

// Printf writes an informational line for the user.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) Phone(_ context.Context) (string, error) {
	return p.ask("Please enter your phone: ")
}

func (p *Prompter) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	return p.ask("Please enter the code you received: ")
}

func (p *Prompter) Password(_ context.Context) (string, error) {
	return p.ask("Please enter your password: ")
}

func (p *Prompter) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("sign up is not supported, register with an official app first")
}

func (p *Prompter) AcceptTermsOfService(_ context.Context, tos tg.HelpTermsOfService) error {
	return &auth.SignUpRequired{TermsOfService: tos}
}

func (p *Prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
