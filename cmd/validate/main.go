package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jwebster45206/survival-engine/pkg/world"
)

// Checks a world file before shipping it: graph validity plus a few
// authoring lints the loader itself does not enforce.
func main() {
	path := "data/world.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	fmt.Printf("Validating %s...\n", path)

	w, err := world.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	warnings := lint(w)
	for _, warn := range warnings {
		fmt.Printf("warning: %s\n", warn)
	}

	fmt.Printf("World file is valid: %d rooms, start %q.\n", len(w.Rooms), w.Start)
	if len(warnings) > 0 {
		os.Exit(2)
	}
}

func lint(w *world.World) []string {
	var warnings []string

	ids := make([]string, 0, len(w.Rooms))
	for id := range w.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		room := w.Rooms[id]
		if room.Name == "" {
			warnings = append(warnings, fmt.Sprintf("room %q has no display name", id))
		}
		if room.Description == "" {
			warnings = append(warnings, fmt.Sprintf("room %q has no description", id))
		}
		if len(room.Connections) == 0 {
			warnings = append(warnings, fmt.Sprintf("room %q is a dead end", id))
		}

		// One-way doors are almost always an authoring mistake.
		for _, dest := range room.Connections {
			back := false
			for _, ret := range w.ConnectionsOf(dest) {
				if ret == id {
					back = true
					break
				}
			}
			if !back {
				warnings = append(warnings, fmt.Sprintf("connection %s -> %s has no return path", id, dest))
			}
		}
	}

	// Every room should be reachable from the start.
	seen := map[string]bool{w.Start: true}
	frontier := []string{w.Start}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, dest := range w.ConnectionsOf(cur) {
			if !seen[dest] {
				seen[dest] = true
				frontier = append(frontier, dest)
			}
		}
	}
	for _, id := range ids {
		if !seen[id] {
			warnings = append(warnings, fmt.Sprintf("room %q is unreachable from %q", id, w.Start))
		}
	}

	return warnings
}
