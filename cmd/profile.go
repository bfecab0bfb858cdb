package cmd

import (
	"github.com/joshnies/pocket/lib/account"
	"github.com/joshnies/pocket/lib/console"
	"github.com/urfave/cli/v2"
)

// Print the user's profile.
func PrintProfile(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	profile, err := account.NewService(s.client, s.creds).GetProfile(c.Context)
	if err != nil {
		return fail(err, "Failed to load profile data.")
	}

	printField("Name", profile.FirstName+" "+profile.LastName)
	printField("Email", profile.Email)
	printField("Phone", profile.Phone)
	if profile.ProfilePicture != "" {
		printField("Picture", profile.ProfilePicture)
	}

	return nil
}

// Update profile fields.
// Fields not given as flags keep their current value.
func UpdateProfile(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	svc := account.NewService(s.client, s.creds)

	profile, err := svc.GetProfile(c.Context)
	if err != nil {
		return fail(err, "Failed to load profile data.")
	}

	if c.IsSet("first-name") {
		profile.FirstName = c.String("first-name")
	}
	if c.IsSet("last-name") {
		profile.LastName = c.String("last-name")
	}
	if c.IsSet("email") {
		profile.Email = c.String("email")
	}
	if c.IsSet("phone") {
		profile.Phone = c.String("phone")
	}

	if err = svc.UpdateProfile(c.Context, profile, c.String("image")); err != nil {
		return fail(err, "An error occurred while updating the profile.")
	}

	console.Success("Profile updated successfully!")
	return nil
}

// Upload a new profile picture.
func UploadProfilePicture(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	if err = account.NewService(s.client, s.creds).UploadProfilePicture(c.Context, c.Args().First()); err != nil {
		return fail(err, "An error occurred while uploading the image. Please try again later.")
	}

	console.Success("Profile image uploaded successfully!")
	return nil
}
