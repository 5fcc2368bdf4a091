package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Room is a single location in the facility, with its legal exits.
type Room struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Connections []string `yaml:"connections" json:"connections"`
}

// World is the static map of the facility. It is loaded once at startup
// and never mutated during play; both the response validator and the
// choice composer treat it as ground truth for movement legality.
type World struct {
	Start string          `yaml:"start" json:"start"`
	Rooms map[string]Room `yaml:"rooms" json:"rooms"`
}

// Has reports whether id names a room in the world.
func (w *World) Has(id string) bool {
	_, ok := w.Rooms[id]
	return ok
}

// Room returns the room record for id.
func (w *World) Room(id string) (Room, bool) {
	r, ok := w.Rooms[id]
	return r, ok
}

// ConnectionsOf returns the ordered list of legal destinations from id.
// An unknown id has no connections.
func (w *World) ConnectionsOf(id string) []string {
	r, ok := w.Rooms[id]
	if !ok {
		return nil
	}
	return r.Connections
}

// Validate checks referential integrity of the map: the start room must
// exist and every connection must name an existing room.
func (w *World) Validate() error {
	if len(w.Rooms) == 0 {
		return fmt.Errorf("world has no rooms")
	}
	if !w.Has(w.Start) {
		return fmt.Errorf("start room %q does not exist", w.Start)
	}
	for id, room := range w.Rooms {
		for _, conn := range room.Connections {
			if !w.Has(conn) {
				return fmt.Errorf("room %q has connection to unknown room %q", id, conn)
			}
		}
	}
	return nil
}

// Load reads a world map from a YAML file and validates it.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	var w World
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world file: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world file %s: %w", path, err)
	}
	return &w, nil
}

// Default returns the built-in map of the derelict robotics facility.
// Used when no world file is present in the data directory.
func Default() *World {
	return &World{
		Start: "bunker_entrance",
		Rooms: map[string]Room{
			"bunker_entrance": {
				Name:        "Bunker Entrance",
				Description: "A reinforced blast door, half open. Emergency lighting flickers over a concrete ramp leading down.",
				Connections: []string{"lab_1", "storage"},
			},
			"lab_1": {
				Name:        "Electronics Lab",
				Description: "Workbenches covered in oscilloscopes and half-disassembled circuit boards. Something was abandoned in a hurry.",
				Connections: []string{"bunker_entrance", "lab_2", "server_room"},
			},
			"lab_2": {
				Name:        "Mechatronics Lab",
				Description: "Robotic arms hang frozen mid-motion over an assembly line. Spare actuators litter the floor.",
				Connections: []string{"lab_1", "workshop"},
			},
			"storage": {
				Name:        "Storage Bay",
				Description: "Steel shelving stacked with crates of components. A forklift blocks one aisle.",
				Connections: []string{"bunker_entrance", "workshop"},
			},
			"workshop": {
				Name:        "Assembly Workshop",
				Description: "A fabrication space with 3D printers, a CNC mill, and an empty robot chassis clamped to the main bench.",
				Connections: []string{"lab_2", "storage", "control_room"},
			},
			"server_room": {
				Name:        "Server Room",
				Description: "Racks of humming servers behind a cracked glass wall. The air is cold and smells of ozone.",
				Connections: []string{"lab_1", "control_room"},
			},
			"control_room": {
				Name:        "Control Room",
				Description: "Banks of dead monitors surround a master console. One screen still scrolls diagnostic output.",
				Connections: []string{"workshop", "server_room", "rooftop"},
			},
			"rooftop": {
				Name:        "Rooftop Access",
				Description: "Wind whips across a gravel roof. In the distance, the silhouettes of the machines move through the ruined city.",
				Connections: []string{"control_room"},
			},
		},
	}
}
