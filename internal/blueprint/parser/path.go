package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"blueprint-editor/internal/blueprint/models"
)

// ============================================================
// Path Parser
// ============================================================

var ErrEmptyPath = errors.New("empty path")

var pathCommand = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// number matches one SVG number, including the compact "10-5" and ".5.5" forms.
var number = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// ParsePath turns an SVG path into its vertices. The SVG y axis maps to Z.
// Only the straight-line commands M, L, H, V and Z are understood; extra
// coordinate pairs after M or L are implicit line-tos.
func ParsePath(d string) ([]models.Point2, error) {
	if strings.TrimSpace(d) == "" {
		return nil, ErrEmptyPath
	}

	var (
		points  []models.Point2
		cursor  models.Point2
		start   models.Point2
		started bool
	)

	for _, match := range pathCommand.FindAllStringSubmatch(d, -1) {
		cmd := rune(match[1][0])
		relative := unicode.IsLower(cmd)
		args, err := parseCoords(match[2])
		if err != nil {
			return nil, fmt.Errorf("path command %c: %w", cmd, err)
		}

		switch unicode.ToUpper(cmd) {
		case 'M', 'L':
			for i := 0; i+1 < len(args); i += 2 {
				next := models.Point2{X: args[i], Z: args[i+1]}
				if relative {
					next = models.Point2{X: cursor.X + next.X, Z: cursor.Z + next.Z}
				}
				cursor = next
				points = append(points, cursor)
				if unicode.ToUpper(cmd) == 'M' && i == 0 {
					start, started = cursor, true
				}
			}

		case 'H':
			for _, x := range args {
				if relative {
					x += cursor.X
				}
				cursor.X = x
				points = append(points, cursor)
			}

		case 'V':
			for _, z := range args {
				if relative {
					z += cursor.Z
				}
				cursor.Z = z
				points = append(points, cursor)
			}

		case 'Z':
			if started {
				cursor = start
				points = append(points, start)
			}
		}
	}

	if len(points) == 0 {
		return nil, ErrEmptyPath
	}
	return points, nil
}

func parseCoords(s string) ([]float64, error) {
	tokens := number.FindAllString(s, -1)
	coords := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		val, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, err
		}
		coords = append(coords, val)
	}
	return coords, nil
}
