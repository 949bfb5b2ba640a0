package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathless/scenario"
)

func newScenariosCmd(root *rootOptions) *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Manage the scenario library",
	}
	cmd.PersistentFlags().StringVar(&db, "db", "", "Scenario database (default from config)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List built-in and stored scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := root.openStore(db)
			if err != nil {
				return err
			}
			defer st.Close()
			stored, err := st.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tSOURCE\tDESCRIPTION")
			for _, s := range scenario.Builtins() {
				fmt.Fprintf(tw, "%s\t%s\tbuiltin\t%s\n", s.Name, size(s.Width, s.Height), s.Description)
			}
			for _, s := range stored {
				fmt.Fprintf(tw, "%s\t%s\tstored\t%s\n", s.Name, size(s.Width, s.Height), s.Description)
			}
			return tw.Flush()
		},
	}

	var rename string
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Save a scenario file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			if rename != "" {
				sc.Name = rename
			}
			st, err := root.openStore(db)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Save(cmd.Context(), sc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", sc.Name)
			return nil
		},
	}
	importCmd.Flags().StringVar(&rename, "name", "", "Store under this name instead of the file's")

	export := &cobra.Command{
		Use:   "export NAME FILE",
		Short: "Write a built-in or stored scenario to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := root.openStore(db)
			if err != nil {
				return err
			}
			defer st.Close()
			sc, err := scenario.Resolve(cmd.Context(), st, args[0])
			if err != nil {
				return err
			}
			if err := scenario.Save(args[1], sc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", sc.Name, args[1])
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a stored scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := root.openStore(db)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, importCmd, export, del)
	return cmd
}

func size(w, h int) string {
	if w == 0 || h == 0 {
		return "any"
	}
	return fmt.Sprintf("%dx%d", w, h)
}
