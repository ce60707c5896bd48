package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vpmshell",
		Short:         "Web GUI for managing Unity projects and VPM packages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newRenderCmd(), newVersionCmd())
	return root
}
