package maps

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"hexclave/internal/game"
)

//go:embed data/*.json
var boardFiles embed.FS

// Registry holds all loaded preset boards.
var Registry = make(map[string]*Board)

// RawBoard is the JSON form of a board. Grid rows run along r and columns
// along q; '.' is water and 'A'..'C' mark an owner. Units rows hold one digit
// per column and may be omitted, in which case every land cell gets one unit.
type RawBoard struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Grid   []string `json:"grid"`
	Units  []string `json:"units,omitempty"`
}

// Board is a ready-to-play board.
type Board struct {
	ID      string
	Name    string
	Players int
	Cells   []game.Cell
}

// BoardInfo contains basic board information for listing.
type BoardInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Players int    `json:"players"`
	Cells   int    `json:"cells"`
}

// LoadAll loads all embedded boards.
func LoadAll() error {
	entries, err := boardFiles.ReadDir("data")
	if err != nil {
		return fmt.Errorf("failed to read board directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		b, err := Load(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to load board %s: %w", entry.Name(), err)
		}

		Registry[b.ID] = b
	}

	return nil
}

// Load loads a single embedded board by filename.
func Load(filename string) (*Board, error) {
	data, err := boardFiles.ReadFile(path.Join("data", filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}
	return LoadFromJSON(data)
}

// LoadFromJSON parses and validates a board, e.g. one written by EncodeBoard.
func LoadFromJSON(data []byte) (*Board, error) {
	var raw RawBoard
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse board JSON: %w", err)
	}

	if err := validate(&raw); err != nil {
		return nil, fmt.Errorf("invalid board: %w", err)
	}

	return process(&raw), nil
}

// Get retrieves a board from the registry by ID.
func Get(id string) *Board {
	return Registry[id]
}

// List returns every registered board sorted by ID.
func List() []BoardInfo {
	infos := make([]BoardInfo, 0, len(Registry))
	for _, b := range Registry {
		infos = append(infos, BoardInfo{
			ID:      b.ID,
			Name:    b.Name,
			Players: b.Players,
			Cells:   len(b.Cells),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// validate checks a raw board for errors.
func validate(raw *RawBoard) error {
	if raw.ID == "" {
		return fmt.Errorf("board ID is required")
	}
	if raw.Width <= 0 || raw.Height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", raw.Width, raw.Height)
	}
	if len(raw.Grid) != raw.Height {
		return fmt.Errorf("grid height mismatch: expected %d, got %d", raw.Height, len(raw.Grid))
	}
	if raw.Units != nil && len(raw.Units) != raw.Height {
		return fmt.Errorf("units height mismatch: expected %d, got %d", raw.Height, len(raw.Units))
	}

	seen := make(map[byte]bool)
	for r, row := range raw.Grid {
		if len(row) != raw.Width {
			return fmt.Errorf("row %d width mismatch: expected %d, got %d", r, raw.Width, len(row))
		}
		if raw.Units != nil && len(raw.Units[r]) != raw.Width {
			return fmt.Errorf("units row %d width mismatch: expected %d, got %d", r, raw.Width, len(raw.Units[r]))
		}
		for q := 0; q < len(row); q++ {
			ch := row[q]
			if ch == '.' {
				continue
			}
			if ownerIndex(ch) < 0 {
				return fmt.Errorf("unknown owner %q at (%d,%d)", ch, q, r)
			}
			seen[ch] = true
			if raw.Units != nil {
				if u := raw.Units[r][q]; u < '0' || u > '0'+game.MaxUnits {
					return fmt.Errorf("bad unit count %q at (%d,%d)", u, q, r)
				}
			}
		}
	}

	players := 0
	for ch := range seen {
		players = max(players, ownerIndex(ch)+1)
	}
	if players < 2 {
		return game.ErrInvalidPlayers
	}
	return nil
}

// ownerIndex maps a grid letter to a player index, or -1.
func ownerIndex(ch byte) int {
	return strings.IndexByte(string(ownerGlyphs), ch)
}

// process converts a validated raw board into cells with sequential ids in
// row-major order.
func process(raw *RawBoard) *Board {
	b := &Board{ID: raw.ID, Name: raw.Name}
	if b.Name == "" {
		b.Name = raw.ID
	}

	for r, row := range raw.Grid {
		for q := 0; q < len(row); q++ {
			owner := ownerIndex(row[q])
			if owner < 0 {
				continue
			}
			units := 1
			if raw.Units != nil {
				units = int(raw.Units[r][q] - '0')
			}
			b.Cells = append(b.Cells, game.Cell{
				ID:    len(b.Cells),
				Q:     q,
				R:     r,
				Owner: game.PlayerID(owner),
				Units: units,
				Land:  true,
			})
			b.Players = max(b.Players, owner+1)
		}
	}
	return b
}

// EncodeBoard writes cells in the JSON board format. Coordinates are shifted
// so the smallest q and r land on zero.
func EncodeBoard(id, name string, cells []game.Cell) ([]byte, error) {
	minQ, minR, maxQ, maxR := 0, 0, -1, -1
	first := true
	for _, c := range cells {
		if !c.Land {
			continue
		}
		if first {
			minQ, maxQ, minR, maxR = c.Q, c.Q, c.R, c.R
			first = false
		}
		minQ, maxQ = min(minQ, c.Q), max(maxQ, c.Q)
		minR, maxR = min(minR, c.R), max(maxR, c.R)
	}
	if first {
		return nil, fmt.Errorf("board %s has no land", id)
	}

	width, height := maxQ-minQ+1, maxR-minR+1
	grid := make([][]byte, height)
	units := make([][]byte, height)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(".", width))
		units[r] = []byte(strings.Repeat("0", width))
	}
	for _, c := range cells {
		if !c.Land {
			continue
		}
		if int(c.Owner) < 0 || int(c.Owner) >= len(ownerGlyphs) {
			return nil, fmt.Errorf("cell %d has no glyph for %v", c.ID, c.Owner)
		}
		grid[c.R-minR][c.Q-minQ] = ownerGlyphs[c.Owner]
		units[c.R-minR][c.Q-minQ] = byte('0' + game.ClampUnits(c.Units))
	}

	raw := RawBoard{ID: id, Name: name, Width: width, Height: height}
	for r := range grid {
		raw.Grid = append(raw.Grid, string(grid[r]))
		raw.Units = append(raw.Units, string(units[r]))
	}
	return json.MarshalIndent(raw, "", "  ")
}
