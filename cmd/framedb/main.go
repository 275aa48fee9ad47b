package main

import (
	"os"

	"github.com/spf13/cobra"

	"framedb/src/app"
)

func main() {
	root := &cobra.Command{
		Use:   "framedb",
		Short: "Buffer-pool manager of the framedb storage engine",
	}

	root.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Run a demonstration workload against an on-disk page file",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &app.Entrypoint{}
			if err := e.Init(); err != nil {
				return err
			}
			defer func() { _ = e.Close() }()

			return e.Run()
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
