// Story commands for the dframe CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

var (
	storyCreateName  string
	storyCreateTheme string
	storyListTheme   string
	storyDeleteYes   bool
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Manage stories",
}

var storyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new story",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "story create:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.StoriesTable)
		if err != nil {
			fmt.Fprintln(os.Stderr, "get table:", err)
			os.Exit(exitSysError)
		}

		story := types.NewStory(storyCreateName, storyCreateTheme)
		id, err := table.Set("", story)
		if err != nil {
			fmt.Fprintln(os.Stderr, "create story:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(story)
		}
		fmt.Printf("Created story: %s\n", id)
		return nil
	},
}

var storyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stories, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "story list:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.StoriesTable)
		if err != nil {
			fmt.Fprintln(os.Stderr, "get table:", err)
			os.Exit(exitSysError)
		}

		filter := types.Filter{}
		if storyListTheme != "" {
			filter["theme"] = storyListTheme
		}
		entities, err := table.Fetch(filter)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fetch stories:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(entities)
		}
		for _, entity := range entities {
			story := entity.(*types.Story)
			fmt.Printf("%s  %-20s  %s  last played %s\n",
				story.StoryID, story.Name, story.Theme,
				story.LastPlayed.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var storyRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a story",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "story rename:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.StoriesTable)
		if err != nil {
			fmt.Fprintln(os.Stderr, "get table:", err)
			os.Exit(exitSysError)
		}

		entity, err := table.Get(args[0])
		if err != nil {
			if isEntityNotFound(err) {
				fmt.Fprintf(os.Stderr, "story %q not found\n", args[0])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "get story:", err)
			os.Exit(exitSysError)
		}

		story := entity.(*types.Story)
		story.Name = args[1]
		if _, err := table.Set(story.StoryID, story); err != nil {
			fmt.Fprintln(os.Stderr, "rename story:", err)
			os.Exit(exitUserError)
		}

		fmt.Printf("Renamed story %s to %q\n", story.StoryID, story.Name)
		return nil
	},
}

var storyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a story",
	Long: `Delete removes a story by ID after interactive confirmation.

Scenes belonging to the story are not removed; use scene commands to clean
them up. Pass --yes to skip the confirmation prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !storyDeleteYes && !confirm(fmt.Sprintf("Delete story %s?", args[0])) {
			fmt.Fprintln(os.Stderr, "aborted")
			return nil
		}

		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "story delete:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.StoriesTable)
		if err != nil {
			fmt.Fprintln(os.Stderr, "get table:", err)
			os.Exit(exitSysError)
		}

		if err := table.Delete(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "delete story:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("Deleted story %s\n", args[0])
		return nil
	},
}

func init() {
	storyCreateCmd.Flags().StringVar(&storyCreateName, "name", "", "story name (required)")
	storyCreateCmd.Flags().StringVar(&storyCreateTheme, "theme", types.ThemeFantasy, "story theme (fantasy, scifi, horror)")
	storyCreateCmd.MarkFlagRequired("name")

	storyListCmd.Flags().StringVar(&storyListTheme, "theme", "", "filter by theme")

	storyDeleteCmd.Flags().BoolVar(&storyDeleteYes, "yes", false, "skip the confirmation prompt")

	storyCmd.AddCommand(storyCreateCmd)
	storyCmd.AddCommand(storyListCmd)
	storyCmd.AddCommand(storyRenameCmd)
	storyCmd.AddCommand(storyDeleteCmd)
}
