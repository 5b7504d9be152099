package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kmoretti/marquee/internal/errfmt"
	"github.com/kmoretti/marquee/internal/habitat"
	"github.com/kmoretti/marquee/internal/token"
)

var (
	authEmail    string
	authUsername string
	authPassword string
	oauthToken   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the credential",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runLogin(ctx, os.Stdout) })
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the credential",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runRegister(ctx, os.Stdout) })
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored credential",
	Long:  "Remove the stored credential. Local only; no request is sent.",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runLogout(os.Stdout) })
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity behind the stored credential",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runWhoami(os.Stdout) })
	},
}

var oauthCmd = &cobra.Command{
	Use:   "oauth <provider>",
	Short: "Print the OAuth2 authorization URL for a provider",
	Long: `Print the OAuth2 authorization URL for a provider such as google or
github. Open it in a browser, then finish with:

  marquee oauth <provider> --token <token-from-redirect>`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runOAuth(args[0], os.Stdout) })
	},
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "account email (prompted when omitted)")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "account password (prompted when omitted)")
	registerCmd.Flags().StringVar(&authUsername, "username", "", "account username (prompted when omitted)")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "account email (prompted when omitted)")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "account password (prompted when omitted)")
	oauthCmd.Flags().StringVar(&oauthToken, "token", "", "token delivered by the OAuth2 redirect")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, oauthCmd)
}

func runLogin(ctx context.Context, w io.Writer) int {
	if err := promptCredentials(false); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env, err := bootstrap()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	res, err := env.Client.Login(ctx, habitat.Credentials{Email: authEmail, Password: authPassword})
	if err != nil {
		fmt.Fprintln(w, errfmt.Auth(err, "Login failed"))
		return 1
	}

	if err := env.Creds.Save(res.Token); err != nil {
		fmt.Fprintf(w, "Error: signed in but could not store credential: %v\n", err)
		return 2
	}

	printIdentity(w, "Signed in", res)
	return 0
}

func runRegister(ctx context.Context, w io.Writer) int {
	if err := promptCredentials(true); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env, err := bootstrap()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	res, err := env.Client.Register(ctx, habitat.Credentials{
		Username: authUsername,
		Email:    authEmail,
		Password: authPassword,
	})
	if err != nil {
		fmt.Fprintln(w, errfmt.Auth(err, "Registration failed"))
		return 1
	}

	if err := env.Creds.Save(res.Token); err != nil {
		fmt.Fprintf(w, "Error: registered but could not store credential: %v\n", err)
		return 2
	}

	printIdentity(w, "Registered", res)
	return 0
}

func runLogout(w io.Writer) int {
	env, err := bootstrap()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := env.Creds.Clear(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Signed out.")
	return 0
}

func runWhoami(w io.Writer) int {
	env, err := bootstrap()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	snap := env.Store.Snapshot()
	if !snap.Session.Authenticated {
		fmt.Fprintln(w, "Not signed in.")
		return 1
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(snap.Session.Profile, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if p := snap.Session.Profile; p != nil {
		fmt.Fprintf(w, "Signed in as %s", p.Username)
		if p.Email != "" {
			fmt.Fprintf(w, " <%s>", p.Email)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "Signed in (credential carries no profile claims).")
	}
	return 0
}

func runOAuth(provider string, w io.Writer) int {
	env, err := bootstrap()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if oauthToken != "" {
		env.Dispatcher.CompleteExternalLogin(oauthToken)
		snap := env.Store.Snapshot()
		if !snap.Session.Authenticated {
			fmt.Fprintln(w, snap.Session.Err)
			return 1
		}
		if p := snap.Session.Profile; p != nil && p.Username != "" {
			fmt.Fprintf(w, "Signed in as %s\n", p.Username)
		} else {
			fmt.Fprintln(w, "Signed in.")
		}
		return 0
	}

	fmt.Fprintln(w, env.Client.AuthorizationURL(provider))
	return 0
}

// promptCredentials fills any missing auth flags interactively.
func promptCredentials(withUsername bool) error {
	var fields []huh.Field
	if withUsername && authUsername == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(&authUsername))
	}
	if authEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&authEmail))
	}
	if authPassword == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&authPassword))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func printIdentity(w io.Writer, verb string, res habitat.AuthResponse) {
	name := ""
	if res.User != nil && res.User.Username != "" {
		name = res.User.Username
	} else if p := token.Derive(res.Token); p != nil {
		name = p.Username
	}
	if name != "" {
		fmt.Fprintf(w, "%s as %s\n", verb, name)
		return
	}
	fmt.Fprintf(w, "%s.\n", verb)
}
