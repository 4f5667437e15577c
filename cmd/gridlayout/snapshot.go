package main

import (
	"github.com/benoitkugler/gridlayout/html/tree"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot FILE...",
		Short: "Convert documents to YAML snapshots",
		Long: `Convert each input to a YAML snapshot, which may be edited and laid out
again. Snapshots are separated by "---".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots := make([][]byte, len(args))
			err := a.forEach(cmd.Context(), args, func(i int, doc *tree.Document) error {
				var err error
				snapshots[i], err = doc.MarshalSnapshot()
				return err
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, s := range snapshots {
				if i > 0 {
					if _, err := w.Write([]byte("---\n")); err != nil {
						return err
					}
				}
				if _, err := w.Write(s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
