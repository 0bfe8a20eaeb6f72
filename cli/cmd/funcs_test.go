package cmd

import (
	"strings"
	"testing"

	"github.com/ardnew/scenic/entity"
)

func TestFuncs(t *testing.T) {
	t.Run("all", func(t *testing.T) {
		ctx, buf := testContext(t)

		if err := (&Funcs{}).Run(ctx); err != nil {
			t.Fatal(err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if want := len(entity.NewRegistry().Names()); len(lines) != want {
			t.Errorf("lines = %d, want %d", len(lines), want)
		}
	})

	t.Run("query", func(t *testing.T) {
		ctx, buf := testContext(t)

		if err := (&Funcs{Query: "Box", Docs: true}).Run(ctx); err != nil {
			t.Fatal(err)
		}

		out := buf.String()
		if !strings.HasPrefix(out, "Box(width number, height number, depth number) geometry\n") {
			t.Errorf("output does not start with the Box signature:\n%s", out)
		}

		if !strings.Contains(out, "  rectangular cuboid\n") {
			t.Errorf("output missing Box description:\n%s", out)
		}

		if strings.Contains(out, "Sphere(") {
			t.Errorf("query matched Sphere:\n%s", out)
		}
	})

	t.Run("no match", func(t *testing.T) {
		ctx, buf := testContext(t)

		if err := (&Funcs{Query: "zzzz"}).Run(ctx); err != nil {
			t.Fatal(err)
		}

		if buf.Len() != 0 {
			t.Errorf("output = %q, want empty", buf.String())
		}
	})
}
