package cmd

import (
	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/lib/contact"
	"github.com/joshnies/pocket/models"
	"github.com/urfave/cli/v2"
)

// Send a message through the contact form.
func SendContactMessage(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	var msg models.ContactMessage
	if msg.Name, err = flagOrPrompt(c, "name", "Name"); err != nil {
		return err
	}
	if msg.Email, err = flagOrPrompt(c, "email", "Email"); err != nil {
		return err
	}
	if msg.Message, err = flagOrPrompt(c, "message", "Message"); err != nil {
		return err
	}

	if err = contact.NewService(s.client).Send(c.Context, msg); err != nil {
		return fail(err, "Failed to send the message. Please check your input and try again.")
	}

	console.Success("Your message has been sent successfully!")
	return nil
}
