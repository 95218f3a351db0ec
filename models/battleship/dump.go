package battleship

import (
	"fmt"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/moving-battleship/internal/error"
)

// Dump returns the canonical textual form of the game:
//
//	(board size, {(x, y): remaining life, ...}, [ship dumps])
//
// Bombs are listed in placement order and ships in roster order,
// so two games in the same state always produce the same dump.
func (g *Game) Dump() string {
	ships := make([]string, len(g.ships))
	for i, ship := range g.ships {
		ships[i] = ship.Dump()
	}

	return fmt.Sprintf("(%d, %s, [%s])", g.boardSize, g.bombs.Dump(), strings.Join(ships, ", "))
}

// ParseDump rebuilds a game from the output of Dump. The hit history
// is seeded with the damaged cells of the ships since that is all the
// dump knows about past hits.
func ParseDump(dump string, opts ...GameOption) (*Game, error) {
	p := &dumpParser{src: dump}

	boardSize, bombs, ships, err := p.parseGame()
	if err != nil {
		return nil, cerr.ErrInvalidDump(err)
	}

	game := NewGame(boardSize, ships, opts...)
	for _, b := range bombs {
		game.bombs.set(b.Position, b.Life)
	}
	for _, ship := range ships {
		game.recordHits(ship.DamagedCells())
	}
	return game, nil
}

type dumpParser struct {
	src string
	pos int
}

func (p *dumpParser) parseGame() (int, []Bomb, []*Ship, error) {
	if err := p.expect('('); err != nil {
		return 0, nil, nil, err
	}
	boardSize, err := p.parseInt()
	if err != nil {
		return 0, nil, nil, err
	}
	if err := p.expect(','); err != nil {
		return 0, nil, nil, err
	}
	bombs, err := p.parseBombs()
	if err != nil {
		return 0, nil, nil, err
	}
	if err := p.expect(','); err != nil {
		return 0, nil, nil, err
	}

	ships := make([]*Ship, 0)
	err = p.parseList('[', ']', func() error {
		ship, err := p.parseShip()
		if err != nil {
			return err
		}
		ships = append(ships, ship)
		return nil
	})
	if err != nil {
		return 0, nil, nil, err
	}

	if err := p.expect(')'); err != nil {
		return 0, nil, nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.src) {
		return 0, nil, nil, fmt.Errorf("unexpected trailing input at offset %d", p.pos)
	}
	return boardSize, bombs, ships, nil
}

func (p *dumpParser) parseBombs() ([]Bomb, error) {
	bombs := make([]Bomb, 0)
	err := p.parseList('{', '}', func() error {
		pos, err := p.parseCoordinates()
		if err != nil {
			return err
		}
		if err := p.expect(':'); err != nil {
			return err
		}
		life, err := p.parseInt()
		if err != nil {
			return err
		}
		bombs = append(bombs, Bomb{Position: pos, Life: life})
		return nil
	})
	return bombs, err
}

func (p *dumpParser) parseShip() (*Ship, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	coords, err := p.parseCoordinatesList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	damaged, err := p.parseCoordinatesList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	label, err := p.parseQuoted()
	if err != nil {
		return nil, err
	}
	direction, err := ParseDirection(label)
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	boardSize, err := p.parseInt()
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}

	return rebuildShip(coords, damaged, direction, boardSize)
}

func rebuildShip(coords, damaged []Coordinates, direction Direction, boardSize int) (*Ship, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("ship without coordinates")
	}

	axis := direction.Axis()
	if len(coords) > 1 {
		axis = AxisHorizontal
		if coords[1].X == coords[0].X {
			axis = AxisVertical
		}
	}
	if direction != DirectionNotMoving && direction.Axis() != axis {
		return nil, fmt.Errorf("ship sailing %s across its %s axis", direction, axis)
	}

	ship := newShipOnAxis(coords[0], len(coords), axis, direction, boardSize)
	for i, c := range ship.Coordinates() {
		if coords[i] != c {
			return nil, fmt.Errorf("ship coordinates are not contiguous: %s", dumpCoordinatesList(coords))
		}
	}

	for _, c := range damaged {
		i := ship.cellIndex(c)
		if i < 0 {
			return nil, fmt.Errorf("damaged cell %s is not part of the ship", c)
		}
		ship.cells[i] = true
	}
	return ship, nil
}

func (p *dumpParser) parseCoordinatesList() ([]Coordinates, error) {
	coords := make([]Coordinates, 0)
	err := p.parseList('[', ']', func() error {
		c, err := p.parseCoordinates()
		if err != nil {
			return err
		}
		coords = append(coords, c)
		return nil
	})
	return coords, err
}

func (p *dumpParser) parseCoordinates() (Coordinates, error) {
	if err := p.expect('('); err != nil {
		return Coordinates{}, err
	}
	x, err := p.parseInt()
	if err != nil {
		return Coordinates{}, err
	}
	if err := p.expect(','); err != nil {
		return Coordinates{}, err
	}
	y, err := p.parseInt()
	if err != nil {
		return Coordinates{}, err
	}
	if err := p.expect(')'); err != nil {
		return Coordinates{}, err
	}
	return NewCoordinates(x, y), nil
}

// parseList reads `opening item, item, ... closing`, calling item for
// every element.
func (p *dumpParser) parseList(opening, closing byte, item func() error) error {
	if err := p.expect(opening); err != nil {
		return err
	}
	if p.peek() == closing {
		p.pos++
		return nil
	}

	for {
		if err := item(); err != nil {
			return err
		}
		switch p.peek() {
		case ',':
			p.pos++
		case closing:
			p.pos++
			return nil
		default:
			return p.unexpected(fmt.Sprintf("',' or '%c'", closing))
		}
	}
}

func (p *dumpParser) parseInt() (int, error) {
	p.skipSpaces()
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}

	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		p.pos = start
		return 0, p.unexpected("integer")
	}
	return n, nil
}

func (p *dumpParser) parseQuoted() (string, error) {
	if err := p.expect('\''); err != nil {
		return "", err
	}
	end := strings.IndexByte(p.src[p.pos:], '\'')
	if end < 0 {
		return "", fmt.Errorf("unterminated string at offset %d", p.pos)
	}
	s := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	return s, nil
}

func (p *dumpParser) expect(b byte) error {
	if p.peek() != b {
		return p.unexpected(fmt.Sprintf("'%c'", b))
	}
	p.pos++
	return nil
}

// peek skips whitespace and returns the next byte, or 0 at the end.
func (p *dumpParser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *dumpParser) skipSpaces() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\n' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *dumpParser) unexpected(want string) error {
	if p.pos >= len(p.src) {
		return fmt.Errorf("expected %s at end of input", want)
	}
	return fmt.Errorf("expected %s at offset %d, got '%c'", want, p.pos, p.src[p.pos])
}
