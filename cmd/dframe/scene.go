// Scene commands for the dframe CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pentarix1996/D-DMaker/internal/session"
	"github.com/pentarix1996/D-DMaker/pkg/types"
)

var sceneAddName string

var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Manage the scenes of a story",
}

var sceneAddCmd = &cobra.Command{
	Use:   "add <story-id>",
	Short: "Append a scene to a story",
	Long: `Add creates a scene at the end of the story's timeline. The scene
order equals the story's current scene count; the name defaults to
"Scene N" when --name is not given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "scene add:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		bundle, err := backend.ExportBundle(args[0])
		if err != nil {
			if isEntityNotFound(err) {
				fmt.Fprintf(os.Stderr, "story %q not found\n", args[0])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "load story:", err)
			os.Exit(exitSysError)
		}

		sess := session.New(newLogger())
		sess.LoadStory(bundle.Story, bundle.Scenes)
		scene, err := sess.CreateScene(sceneAddName)
		if err != nil {
			fmt.Fprintln(os.Stderr, "create scene:", err)
			os.Exit(exitSysError)
		}
		if err := sess.Save(backend); err != nil {
			fmt.Fprintln(os.Stderr, "save scene:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(scene)
		}
		fmt.Printf("Added scene %s (%q, order %d)\n", scene.SceneID, scene.Name, scene.Order)
		return nil
	},
}

var sceneListCmd = &cobra.Command{
	Use:   "list <story-id>",
	Short: "List a story's scenes in timeline order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "scene list:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.ScenesTable)
		if err != nil {
			fmt.Fprintln(os.Stderr, "get table:", err)
			os.Exit(exitSysError)
		}

		entities, err := table.Fetch(types.Filter{"story_id": args[0]})
		if err != nil {
			fmt.Fprintln(os.Stderr, "fetch scenes:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(entities)
		}
		for _, entity := range entities {
			scene := entity.(*types.Scene)
			fmt.Printf("%3d  %s  %-20s  %d tokens\n",
				scene.Order, scene.SceneID, scene.Name, len(scene.Tokens))
		}
		return nil
	},
}

func init() {
	sceneAddCmd.Flags().StringVar(&sceneAddName, "name", "", "scene name (default: Scene N)")

	sceneCmd.AddCommand(sceneAddCmd)
	sceneCmd.AddCommand(sceneListCmd)
}
