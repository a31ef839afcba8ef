package main

import (
	"fmt"
	"os"

	"github.com/crucial707/course-api/cmd/cli/root"

	_ "github.com/crucial707/course-api/cmd/cli/courses"
	_ "github.com/crucial707/course-api/cmd/cli/users"
)

func main() {
	// Execute the root Cobra command
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
