package tiny

import (
	"fmt"
	"text/tabwriter"
	"unsafe"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/urfave/cli/v2"

	"go.minekube.com/tiny/pkg/internal/example"
	"go.minekube.com/tiny/pkg/sets"
)

func sizesCommand() *cli.Command {
	return &cli.Command{
		Name:  "sizes",
		Usage: "Print the in-memory footprint of the set types",
		Action: func(c *cli.Context) error {
			var (
				foo    example.Foo
				inline [sets.Capacity]example.Foo
				tiny   sets.Tiny[example.Foo, example.FooOrder]
				small  sets.Of[uint16]
				capped sets.CappedSet[example.Foo, example.FooOrder]
				tree   redblacktree.Tree
			)
			rows := []struct {
				name string
				size uintptr
			}{
				{"Foo", unsafe.Sizeof(foo)},
				{fmt.Sprintf("[%d]Foo", sets.Capacity), unsafe.Sizeof(inline)},
				{"Tiny[Foo, FooOrder]", unsafe.Sizeof(tiny)},
				{"Of[uint16]", unsafe.Sizeof(small)},
				{"CappedSet[Foo, FooOrder]", unsafe.Sizeof(capped)},
				{"redblacktree.Tree", unsafe.Sizeof(tree)},
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "inline capacity\t%d\n", sets.Capacity)
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d bytes\n", r.name, r.size)
			}
			return w.Flush()
		},
	}
}
