// Token commands for the dframe CLI. These drive the same canvas logic
// the editor uses, so drops and edits obey the mode rules.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pentarix1996/D-DMaker/internal/canvas"
	"github.com/pentarix1996/D-DMaker/internal/session"
	"github.com/pentarix1996/D-DMaker/internal/vault"
	"github.com/pentarix1996/D-DMaker/pkg/types"
)

var (
	dropX float64
	dropY float64

	tokenMoveX      float64
	tokenMoveY      float64
	tokenScaleSteps int
	tokenDeleteYes  bool
)

// loadSceneSession loads the story into an editing session with the given
// scene active. Exits with a user error when either ID is unknown.
func loadSceneSession(backend types.Store, storyID, sceneID string) *session.Session {
	bundle, err := backend.ExportBundle(storyID)
	if err != nil {
		if isEntityNotFound(err) {
			fmt.Fprintf(os.Stderr, "story %q not found\n", storyID)
			os.Exit(exitUserError)
		}
		fmt.Fprintln(os.Stderr, "load story:", err)
		os.Exit(exitSysError)
	}

	sess := session.New(newLogger())
	sess.LoadStory(bundle.Story, bundle.Scenes)
	sess.SetActiveScene(sceneID)
	scene := sess.CurrentScene()
	if scene == nil || scene.SceneID != sceneID {
		fmt.Fprintf(os.Stderr, "scene %q not found in story %q\n", sceneID, storyID)
		os.Exit(exitUserError)
	}
	sess.SetEditMode(true)
	return sess
}

func saveSceneSession(sess *session.Session, backend types.Store) {
	if err := sess.Save(backend); err != nil {
		fmt.Fprintln(os.Stderr, "save scene:", err)
		os.Exit(exitSysError)
	}
}

var sceneDropCmd = &cobra.Command{
	Use:   "drop <story-id> <scene-id> <asset-id>",
	Short: "Drop a vault asset onto a scene",
	Long: `Drop applies an asset to the scene the way a drag onto the canvas
would: a map becomes the background, an audio file becomes the scene
music, and anything else is placed as a token centered on --x/--y.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "scene drop:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.AssetsTable)
		if err != nil {
			fmt.Fprintln(os.Stderr, "get table:", err)
			os.Exit(exitSysError)
		}
		entity, err := table.Get(args[2])
		if err != nil {
			if isEntityNotFound(err) {
				fmt.Fprintf(os.Stderr, "asset %q not found\n", args[2])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "load asset:", err)
			os.Exit(exitSysError)
		}
		asset := entity.(*types.Asset)

		sess := loadSceneSession(backend, args[0], args[1])

		v := vault.New(newLogger(), backend)
		raw, err := v.DragPayload(asset, "")
		if err != nil {
			fmt.Fprintln(os.Stderr, "encode payload:", err)
			os.Exit(exitSysError)
		}

		cv := canvas.New(newLogger(), sess)
		notice := cv.HandleDrop(raw, canvas.Point{X: dropX, Y: dropY}, canvas.Point{})
		saveSceneSession(sess, backend)

		if notice != "" {
			fmt.Println(notice)
		} else {
			fmt.Printf("Dropped %s %s onto scene %s\n", asset.Type, asset.AssetID, args[1])
		}
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manipulate tokens placed on a scene",
}

var tokenMoveCmd = &cobra.Command{
	Use:   "move <story-id> <scene-id> <token-id>",
	Short: "Move a token to a new canvas position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withToken(args, func(cv *canvas.Canvas, tokenID string) bool {
			return cv.MoveToken(tokenID, canvas.Point{X: tokenMoveX, Y: tokenMoveY})
		})
	},
}

var tokenScaleCmd = &cobra.Command{
	Use:   "scale <story-id> <scene-id> <token-id>",
	Short: "Grow or shrink a token by scale steps",
	Long: `Scale adjusts the token by --steps increments of 0.1, clamped to the
0.5 to 3.0 range. Negative steps shrink the token.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withToken(args, func(cv *canvas.Canvas, tokenID string) bool {
			return cv.AdjustScale(tokenID, tokenScaleSteps)
		})
	},
}

var tokenShapeCmd = &cobra.Command{
	Use:   "shape <story-id> <scene-id> <token-id>",
	Short: "Toggle a token between circle and square",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withToken(args, func(cv *canvas.Canvas, tokenID string) bool {
			return cv.ToggleShape(tokenID)
		})
	},
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete <story-id> <scene-id> <token-id>",
	Short: "Remove a token from a scene",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tokenDeleteYes && !confirm(fmt.Sprintf("Delete token %s?", args[2])) {
			fmt.Println("Aborted.")
			return nil
		}
		return withToken(args, func(cv *canvas.Canvas, tokenID string) bool {
			return cv.DeleteToken(tokenID, nil)
		})
	},
}

// withToken runs a canvas mutation against the named scene and saves the
// result. The mutation reports whether the token existed.
func withToken(args []string, mutate func(cv *canvas.Canvas, tokenID string) bool) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	sess := loadSceneSession(backend, args[0], args[1])
	cv := canvas.New(newLogger(), sess)

	if !mutate(cv, args[2]) {
		fmt.Fprintf(os.Stderr, "token %q not found on scene %q\n", args[2], args[1])
		os.Exit(exitUserError)
	}
	saveSceneSession(sess, backend)

	fmt.Printf("Updated scene %s\n", args[1])
	return nil
}

func init() {
	sceneDropCmd.Flags().Float64Var(&dropX, "x", 0, "pointer X in canvas space")
	sceneDropCmd.Flags().Float64Var(&dropY, "y", 0, "pointer Y in canvas space")
	sceneCmd.AddCommand(sceneDropCmd)

	tokenMoveCmd.Flags().Float64Var(&tokenMoveX, "x", 0, "new X position")
	tokenMoveCmd.Flags().Float64Var(&tokenMoveY, "y", 0, "new Y position")
	tokenScaleCmd.Flags().IntVar(&tokenScaleSteps, "steps", 1, "scale steps of 0.1 (negative shrinks)")
	tokenDeleteCmd.Flags().BoolVar(&tokenDeleteYes, "yes", false, "skip the confirmation prompt")

	tokenCmd.AddCommand(tokenMoveCmd)
	tokenCmd.AddCommand(tokenScaleCmd)
	tokenCmd.AddCommand(tokenShapeCmd)
	tokenCmd.AddCommand(tokenDeleteCmd)
}
