package sorting

import "strings"

// Direction is the sort direction carried in the direction query parameter.
type Direction string

const (
	DirectionNone Direction = ""
	Ascending     Direction = "asc"
	Descending    Direction = "desc"
)

// Icons holds the markup appended to the title of the active column.
type Icons struct {
	Up   string
	Down string
}

// ParseDirection normalises raw query values. Anything other than asc or desc
// is treated as no direction.
func ParseDirection(raw string) Direction {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case Ascending:
		return Ascending
	case Descending:
		return Descending
	default:
		return DirectionNone
	}
}

// Inverse returns the direction a link on the active column switches to.
func (d Direction) Inverse() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Icon returns the arrow shown next to a column currently sorted in d.
func (d Direction) Icon(icons Icons) string {
	if d == Ascending {
		return icons.Up
	}
	return icons.Down
}

// Prefix returns the ordering prefix for d. An unset direction sorts
// descending.
func (d Direction) Prefix() string {
	if d == Ascending {
		return ""
	}
	return "-"
}
