package courses

import (
	"fmt"
	"net/http"
	"strconv"

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
	coursesCmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage courses",
		Long:  "List, inspect, create, update, and delete courses in the Course API.",
	}

	coursesCmd.AddCommand(listCmd(), getCmd(), createCmd(), updateCmd(), deleteCmd())
	root.GetRoot().AddCommand(coursesCmd)
}

// ==========================
// List Courses
// ==========================
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			var courses []models.Course
			if _, err := client.New(config.APIURL()).Do(http.MethodGet, "/api/courses", nil, &courses); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(courses))
			for _, c := range courses {
				owner := ""
				if c.User != nil {
					owner = fmt.Sprintf("%s %s <%s>", c.User.FirstName, c.User.LastName, c.User.EmailAddress)
				}
				rows = append(rows, []interface{}{c.ID, c.Title, owner})
			}
			output.RenderTable([]string{"ID", "Title", "Owner"}, rows)
			return nil
		},
	}
}

// ==========================
// Get Course
// ==========================
func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var course models.Course
			if _, err := client.New(config.APIURL()).Do(http.MethodGet, "/api/courses/"+args[0], nil, &course); err != nil {
				return err
			}

			rows := [][]interface{}{
				{"ID", course.ID},
				{"Title", course.Title},
				{"Description", course.Description},
				{"Estimated time", deref(course.EstimatedTime)},
				{"Materials needed", deref(course.MaterialsNeeded)},
			}
			if course.User != nil {
				rows = append(rows, []interface{}{"Owner", fmt.Sprintf("%s %s <%s>", course.User.FirstName, course.User.LastName, course.User.EmailAddress)})
			}
			output.RenderTable([]string{"Field", "Value"}, rows)
			return nil
		},
	}
}

// ==========================
// Create Course
// ==========================
func createCmd() *cobra.Command {
	var user, title, description, estimatedTime, materials string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course owned by the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := config.Credentials(user)
			if err != nil {
				return err
			}

			in := courseInput(title, description, estimatedTime, materials)

			headers, err := client.New(config.APIURL()).WithAuth(email, password).
				Do(http.MethodPost, "/api/courses", in, nil)
			if err != nil {
				return err
			}

			fmt.Println("Created:", headers.Get("Location"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "credentials as email:password")
	cmd.Flags().StringVar(&title, "title", "", "course title")
	cmd.Flags().StringVar(&description, "description", "", "course description")
	cmd.Flags().StringVar(&estimatedTime, "time", "", "estimated time (optional)")
	cmd.Flags().StringVar(&materials, "materials", "", "materials needed (optional)")
	return cmd
}

// ==========================
// Update Course
// ==========================
func updateCmd() *cobra.Command {
	var user, title, description, estimatedTime, materials string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a course you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}
			email, password, err := config.Credentials(user)
			if err != nil {
				return err
			}

			in := courseInput(title, description, estimatedTime, materials)

			if _, err := client.New(config.APIURL()).WithAuth(email, password).
				Do(http.MethodPut, "/api/courses/"+args[0], in, nil); err != nil {
				return err
			}

			fmt.Println("Updated course", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "credentials as email:password")
	cmd.Flags().StringVar(&title, "title", "", "course title")
	cmd.Flags().StringVar(&description, "description", "", "course description")
	cmd.Flags().StringVar(&estimatedTime, "time", "", "estimated time (optional)")
	cmd.Flags().StringVar(&materials, "materials", "", "materials needed (optional)")
	return cmd
}

// ==========================
// Delete Course
// ==========================
func deleteCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a course you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := config.Credentials(user)
			if err != nil {
				return err
			}

			if _, err := client.New(config.APIURL()).WithAuth(email, password).
				Do(http.MethodDelete, "/api/courses/"+args[0], nil, nil); err != nil {
				return err
			}

			fmt.Println("Deleted course", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "credentials as email:password")
	return cmd
}

// courseInput builds the request body from flag values. Flags left at
// their empty default are omitted, so the server's own rules decide what
// is required.
func courseInput(title, description, estimatedTime, materials string) models.CourseInput {
	var in models.CourseInput
	if title != "" {
		in.Title = &title
	}
	if description != "" {
		in.Description = &description
	}
	if estimatedTime != "" {
		in.EstimatedTime = &estimatedTime
	}
	if materials != "" {
		in.MaterialsNeeded = &materials
	}
	return in
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
