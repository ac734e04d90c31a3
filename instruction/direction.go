package instruction

import (
	"fmt"
	"strings"
)

// Direction classifies an instruction as money leaving (a buy) or
// arriving (a sell). The zero value is not a valid direction.
type Direction int

const (
	Unset Direction = iota
	Outgoing
	Incoming
)

// Directions lists the valid directions in report order.
var Directions = []Direction{Outgoing, Incoming}

func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "outgoing"
	case Incoming:
		return "incoming"
	}
	return "unset"
}

// Code is the single letter trade code, B for buy and S for sell.
func (d Direction) Code() string {
	switch d {
	case Outgoing:
		return "B"
	case Incoming:
		return "S"
	}
	return ""
}

func (d Direction) Valid() bool {
	return d == Outgoing || d == Incoming
}

// ParseDirection accepts trade codes (B/S), trade sides (buy/sell) and
// direction names (outgoing/incoming), case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "buy", "outgoing", "out":
		return Outgoing, nil
	case "s", "sell", "incoming", "in":
		return Incoming, nil
	}
	return Unset, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("cannot marshal direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
