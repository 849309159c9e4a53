package main

import (
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/worklog-go"
)

func newProfileCmd(flags *globalFlags) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "View or edit your profile"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, a *app) error {
			p, err := a.svc.Profile(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			printProfile(a.printer, p)
			return nil
		}),
	}

	var in worklog.ProfileRecord
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, a *app) error {
			current, err := a.svc.Profile(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			rec := current.ProfileRecord
			if cmd.Flags().Changed("first-name") {
				rec.FirstName = in.FirstName
			}
			if cmd.Flags().Changed("last-name") {
				rec.LastName = in.LastName
			}
			if cmd.Flags().Changed("email") {
				rec.Email = in.Email
			}
			if cmd.Flags().Changed("avatar-url") {
				rec.AvatarURL = in.AvatarURL
			}
			p, err := a.svc.SetProfile(cmd.Context(), a.userID, rec)
			if err != nil {
				return err
			}
			printProfile(a.printer, p)
			return nil
		}),
	}
	setCmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	setCmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	setCmd.Flags().StringVar(&in.Email, "email", "", "email address")
	setCmd.Flags().StringVar(&in.AvatarURL, "avatar-url", "", "avatar image URL")

	profile.AddCommand(showCmd, setCmd)
	return profile
}

func printProfile(p printer, profile worklog.ExistingProfileRecord) {
	p.Title(profile.DisplayName())
	p.Fields(
		"User ID", string(profile.ID),
		"Email", profile.Email,
		"Avatar", profile.AvatarURL,
	)
}
