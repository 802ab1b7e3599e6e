package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/shelfpack/internal/model"
)

// Project converts the parsed file into a project. Settings not declared keep
// their defaults; a missing container leaves the container at zero size so
// the caller can supply one.
func (f *File) Project() (model.Project, error) {
	proj := model.NewProject()

	for _, st := range f.Statements {
		switch {
		case st.Project != nil:
			proj.Name = string(*st.Project)

		case st.Container != nil:
			proj.Container = model.NewSize(st.Container.Width, st.Container.Height)

		case st.Sort != nil:
			key, err := model.ParseSortKey(*st.Sort)
			if err != nil {
				return proj, fmt.Errorf("%s: %w", st.Pos, err)
			}
			proj.Settings.SortKey = key

		case st.Algorithm != nil:
			alg, err := model.ParseAlgorithm(*st.Algorithm)
			if err != nil {
				return proj, fmt.Errorf("%s: %w", st.Pos, err)
			}
			proj.Settings.Algorithm = alg

		case st.Seed != nil:
			proj.Settings.Seed = *st.Seed

		case st.Item != nil:
			qty := 1
			if st.Item.Quantity != nil {
				qty = int(*st.Item.Quantity)
			}
			if qty < 1 {
				return proj, fmt.Errorf("%s: item %q: quantity must be at least 1", st.Pos, st.Item.Label)
			}
			proj.Items = append(proj.Items,
				model.NewItem(string(st.Item.Label), st.Item.Size.Width, st.Item.Size.Height, qty))
		}
	}

	return proj, nil
}

// LoadProject parses r and converts it in one step.
func LoadProject(r io.Reader) (model.Project, error) {
	f, err := Parse(r)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to parse item list: %w", err)
	}
	return f.Project()
}

// Format renders a project back into .pack text. Parsing the output yields
// the same name, container, settings and items (IDs aside).
func Format(proj model.Project) string {
	var b strings.Builder

	fmt.Fprintf(&b, "project %s\n", strconv.Quote(proj.Name))
	if proj.Container.Area() > 0 {
		fmt.Fprintf(&b, "container %s\n", formatDimensions(proj.Container))
	}
	fmt.Fprintf(&b, "sort %s\n", proj.Settings.SortKey)
	fmt.Fprintf(&b, "algorithm %s\n", proj.Settings.Algorithm)
	fmt.Fprintf(&b, "seed %d\n", proj.Settings.Seed)

	if len(proj.Items) > 0 {
		b.WriteString("\n")
	}
	for _, it := range proj.Items {
		fmt.Fprintf(&b, "item %s %s", strconv.Quote(it.Label), formatDimensions(it.Size()))
		if it.Quantity != 1 {
			fmt.Fprintf(&b, " qty %d", it.Quantity)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatDimensions(s model.Size) string {
	return strconv.FormatFloat(s.Width, 'f', -1, 64) + "x" + strconv.FormatFloat(s.Height, 'f', -1, 64)
}
