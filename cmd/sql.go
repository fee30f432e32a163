package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"erdraw/sqlgen"
)

func sqlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Compose SQL DDL statements",
		Long: "Compose CREATE TABLE and ALTER TABLE statements from column\n" +
			"descriptions. Columns are given as name:type[:size][:flags] where\n" +
			"flags are p (primary key), n (not null), a (auto increment) and\n" +
			"u (unique). Statements are printed, never executed.",
	}
	cmd.AddCommand(sqlCreateCmd(), sqlAlterCmd())
	return cmd
}

func sqlCreateCmd() *cobra.Command {
	var columns []string

	cmd := &cobra.Command{
		Use:   "create <table>",
		Short: "Compose a CREATE TABLE statement",
		Example: `  erdraw sql create users \
    -c id:int:pa -c email:varchar:255:nu -c created_at:timestamp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl := sqlgen.Table{Name: args[0]}
			for _, spec := range columns {
				col, err := sqlgen.ParseColumnSpec(spec)
				if err != nil {
					return err
				}
				tbl.Columns = append(tbl.Columns, col)
			}
			sql, err := tbl.CreateStatement()
			if err != nil {
				return err
			}
			fmt.Println(sql)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&columns, "column", "c", nil, "Column spec, repeatable")
	return cmd
}

func sqlAlterCmd() *cobra.Command {
	var (
		add    string
		modify string
		drop   string
	)

	cmd := &cobra.Command{
		Use:   "alter <table>",
		Short: "Compose an ALTER TABLE statement",
		Example: `  erdraw sql alter users --add age:int
  erdraw sql alter users --modify email:varchar:512:n
  erdraw sql alter users --drop age`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alter := sqlgen.Alter{Table: args[0]}
			switch {
			case add != "":
				col, err := sqlgen.ParseColumnSpec(add)
				if err != nil {
					return err
				}
				alter.Op = sqlgen.AlterAdd
				alter.Column = col
			case modify != "":
				col, err := sqlgen.ParseColumnSpec(modify)
				if err != nil {
					return err
				}
				alter.Op = sqlgen.AlterModify
				alter.Column = col
			case drop != "":
				alter.Op = sqlgen.AlterDrop
				alter.Column = sqlgen.Column{Name: drop}
			default:
				return fmt.Errorf("one of --add, --modify or --drop is required")
			}

			sql, err := alter.Statement()
			if err != nil {
				return err
			}
			fmt.Println(sql)
			return nil
		},
	}

	cmd.Flags().StringVar(&add, "add", "", "Add a column (name:type[:size][:flags])")
	cmd.Flags().StringVar(&modify, "modify", "", "Modify a column (name:type[:size][:flags])")
	cmd.Flags().StringVar(&drop, "drop", "", "Drop a column by name")
	return cmd
}
