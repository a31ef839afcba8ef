package users

import (
	"fmt"
	"net/http"

	"github.com/crucial707/course-api/cmd/cli/client"
	"github.com/crucial707/course-api/cmd/cli/config"
	"github.com/crucial707/course-api/cmd/cli/output"
	"github.com/crucial707/course-api/cmd/cli/root"
	"github.com/crucial707/course-api/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
		Long:  "Register a user or show the currently authenticated account.",
	}

	usersCmd.AddCommand(createCmd(), meCmd())
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// Create User
// ==========================
func createCmd() *cobra.Command {
	var firstName, lastName, email, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"firstName":    firstName,
				"lastName":     lastName,
				"emailAddress": email,
				"password":     password,
			}

			if _, err := client.New(config.APIURL()).Do(http.MethodPost, "/api/users", payload, nil); err != nil {
				return err
			}

			fmt.Println("User created:", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address (login name)")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

// ==========================
// Current User
// ==========================
func meCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user and their courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := config.Credentials(user)
			if err != nil {
				return err
			}

			var resp struct {
				User    models.PublicUser `json:"user"`
				Courses []models.Course   `json:"courses"`
			}
			if _, err := client.New(config.APIURL()).WithAuth(email, password).
				Do(http.MethodGet, "/api/users", nil, &resp); err != nil {
				return err
			}

			fmt.Printf("%s %s <%s> (id %d)\n", resp.User.FirstName, resp.User.LastName, resp.User.EmailAddress, resp.User.ID)

			rows := make([][]interface{}, 0, len(resp.Courses))
			for _, c := range resp.Courses {
				rows = append(rows, []interface{}{c.ID, c.Title})
			}
			output.RenderTable([]string{"ID", "Title"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "credentials as email:password")
	return cmd
}
