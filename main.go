package main

import (
	"os"

	"github.com/joshnies/pocket/cmd"
	"github.com/joshnies/pocket/config"
	"github.com/joshnies/pocket/lib/console"
	"github.com/urfave/cli/v2"
)

func main() {
	// Initialize config
	config.InitConfig()

	emailFlag := &cli.StringFlag{
		Name:    "email",
		Aliases: []string{"e"},
		Usage:   "Account email (prompted if omitted)",
	}

	// Initialize CLI app
	app := &cli.App{
		Name:    "pocket",
		Usage:   "Pocket CLI",
		Version: "0.1.0",
		Commands: []*cli.Command{
			{
				Name:   "register",
				Usage:  "Create an account and verify it with a one-time passcode",
				Action: cmd.Register,
				Flags: []cli.Flag{
					emailFlag,
					&cli.StringFlag{Name: "first-name", Usage: "First name"},
					&cli.StringFlag{Name: "last-name", Usage: "Last name"},
				},
			},
			{
				Name:   "login",
				Usage:  "Log in with a one-time passcode sent to your email",
				Action: cmd.LogIn,
				Flags: []cli.Flag{
					emailFlag,
					&cli.StringFlag{Name: "otp", Usage: "Verify an OTP you already received instead of requesting a new one"},
					&cli.BoolFlag{Name: "google", Usage: "Sign in with your Google account in the browser"},
				},
			},
			{
				Name:   "otp",
				Usage:  "Request a new one-time passcode",
				Action: cmd.RequestOTP,
				Flags:  []cli.Flag{emailFlag},
			},
			{
				Name:   "auth",
				Usage:  "Print current authentication state",
				Action: cmd.PrintAuthState,
			},
			{
				Name:   "profile",
				Usage:  "Print your profile",
				Action: cmd.PrintProfile,
				Subcommands: []*cli.Command{
					{
						Name:   "update",
						Usage:  "Update your profile",
						Action: cmd.UpdateProfile,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "first-name", Usage: "First name"},
							&cli.StringFlag{Name: "last-name", Usage: "Last name"},
							&cli.StringFlag{Name: "email", Usage: "Email"},
							&cli.StringFlag{Name: "phone", Usage: "10-digit phone number"},
							&cli.StringFlag{Name: "image", Usage: "Path to a new profile picture"},
						},
					},
					{
						Name:      "upload",
						Usage:     "Upload a new profile picture",
						ArgsUsage: "<image path>",
						Action:    cmd.UploadProfilePicture,
					},
				},
			},
			{
				Name:   "payment",
				Usage:  "Save payment information",
				Action: cmd.SavePaymentInfo,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "upi", Usage: "UPI ID", Required: true},
					&cli.StringFlag{Name: "card", Usage: "16-digit card number", Required: true},
					&cli.StringFlag{Name: "expiry", Usage: "Card expiry date (MM/YY)", Required: true},
					&cli.StringFlag{Name: "name", Usage: "Cardholder name", Required: true},
					&cli.StringFlag{Name: "cvv", Usage: "Card CVV (prompted if omitted)"},
				},
			},
			{
				Name:    "transactions",
				Usage:   "List your transactions",
				Aliases: []string{"tx"},
				Action:  cmd.ListTransactions,
			},
			{
				Name:      "items",
				Usage:     "List items, optionally filtered by name",
				ArgsUsage: "[query]",
				Action:    cmd.ListItems,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "refresh",
						Aliases: []string{"r"},
						Usage:   "Ignore the saved copy and fetch items again",
					},
				},
			},
			{
				Name:    "favourites",
				Usage:   "List your favourites",
				Aliases: []string{"favorites", "favs"},
				Action:  cmd.ListFavourites,
			},
			{
				Name:   "contact",
				Usage:  "Send us a message",
				Action: cmd.SendContactMessage,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Your name"},
					emailFlag,
					&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "Message"},
				},
			},
			{
				Name:   "endpoints",
				Usage:  "List API endpoints",
				Action: cmd.ListEndpoints,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		console.Fatal("%s", err)
	}
}
