package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/books"
	"github.com/five82/folio/internal/remote"
)

var errNoChanges = errors.New("nothing to change: pass --title, --author or --price")

// fieldFlags are the editable fields as command-line flags. Values are
// staged exactly like typed input, so an unparsable price becomes NaN.
type fieldFlags struct {
	Title  string
	Author string
	Price  string
}

func (f *fieldFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Title, "title", "", "Book title.")
	cmd.Flags().StringVar(&f.Author, "author", "", "Book author.")
	cmd.Flags().StringVar(&f.Price, "price", "", "Book price.")
}

// changed returns the staged values for the flags set on the command line.
func (f *fieldFlags) changed(cmd *cobra.Command) map[books.Field]string {
	values := map[books.Field]string{
		books.FieldTitle:  f.Title,
		books.FieldAuthor: f.Author,
		books.FieldPrice:  f.Price,
	}
	out := make(map[books.Field]string, len(values))
	for field, v := range values {
		if cmd.Flags().Changed(string(field)) {
			out[field] = v
		}
	}
	return out
}

type listedBook struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Author string       `json:"author"`
	Price  remote.Price `json:"price"`
}

func addList(topLevel *cobra.Command, ro *rootOptions) {
	asJSON := false
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the books in the collection.",
		Example: `
folio ls
folio ls --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := ro.env(cmd)
			if err != nil {
				return err
			}
			if err := env.Controller.Load(cmd.Context()); err != nil {
				return err
			}
			items := env.Controller.Snapshot().Items
			out := cmd.OutOrStdout()

			if asJSON {
				listed := make([]listedBook, 0, len(items))
				for _, it := range items {
					listed = append(listed, listedBook{ID: it.ID, Title: it.Title, Author: it.Author, Price: remote.Price(it.Price)})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(listed)
			}

			if len(items) == 0 {
				fmt.Fprintln(out, "No books.")
				return nil
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			bold := color.New(color.Bold)
			tbl.AddRow(bold.Sprint("ID"), bold.Sprint("TITLE"), bold.Sprint("AUTHOR"), bold.Sprint("PRICE"))
			for _, it := range items {
				tbl.AddRow(it.ID, it.Title, it.Author, books.FormatPrice(it.Price))
			}
			fmt.Fprintln(out, tbl)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the books as JSON.")

	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command, ro *rootOptions) {
	ff := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book.",
		Example: `
folio add --title Dune --author "Frank Herbert" --price 9.99
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := ro.env(cmd)
			if err != nil {
				return err
			}
			for field, v := range ff.changed(cmd) {
				if err := env.Controller.UpdateNewField(string(field), v); err != nil {
					return err
				}
			}
			item, err := env.Controller.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", color.New(color.Bold).Sprint(item.ID))
			return nil
		},
	}

	ff.bind(cmd)
	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command, ro *rootOptions) {
	ff := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a book. Fields without a flag keep their value.",
		Example: `
folio edit 6650f1c2 --price 12.50
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes := ff.changed(cmd)
			if len(changes) == 0 {
				return errNoChanges
			}
			env, err := ro.env(cmd)
			if err != nil {
				return err
			}
			ctrl := env.Controller
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			if _, err := ctrl.BeginEdit(args[0]); err != nil {
				return err
			}
			for field, v := range changes {
				if err := ctrl.UpdateDraftField(string(field), v); err != nil {
					return err
				}
			}
			if err := ctrl.Commit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", color.New(color.Bold).Sprint(args[0]))
			return nil
		},
	}

	ff.bind(cmd)
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a book.",
		Example: `
folio rm 6650f1c2
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ro.env(cmd)
			if err != nil {
				return err
			}
			if err := env.Controller.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", color.New(color.Bold).Sprint(args[0]))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
