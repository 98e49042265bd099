package engine

import "fmt"

type Side uint8

const (
	White Side = iota
	Black
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// forward is the rank direction pawns of this side advance in.
func (s Side) forward() int {
	if s == White {
		return 1
	}
	return -1
}

// homeRank is the back rank the side's king and rooks start on.
func (s Side) homeRank() int {
	if s == White {
		return 0
	}
	return 7
}

func (s Side) pawnRank() int {
	if s == White {
		return 1
	}
	return 6
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*s = White
	case "black":
		*s = Black
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

// Kind is the closed set of piece kinds. The zero value marks an empty cell
// inside a Snapshot.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{
	NoKind: "",
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return ""
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

type Occupant struct {
	Side Side `json:"side"`
	Kind Kind `json:"kind"`
}

func (o Occupant) String() string {
	return o.Side.String() + " " + o.Kind.String()
}

// Square is a (file, rank) pair; file 0 is the a-file and rank 0 is White's
// back rank.
type Square struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

func (s Square) OnBoard() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

func (s Square) Offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return fmt.Sprintf("%c%d", 'a'+s.File, s.Rank+1)
}

type Wing uint8

const (
	Kingside Wing = iota
	Queenside
)

func (w Wing) String() string {
	if w == Kingside {
		return "kingside"
	}
	return "queenside"
}

// rookFile is the corner file the wing's rook starts on.
func (w Wing) rookFile() int {
	if w == Kingside {
		return 7
	}
	return 0
}

// CastlingRights holds one flag per (side, wing). A cleared flag is never
// set again for the lifetime of a Position.
type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

func allCastlingRights() CastlingRights {
	return CastlingRights{
		WhiteKingside:  true,
		WhiteQueenside: true,
		BlackKingside:  true,
		BlackQueenside: true,
	}
}

func (c CastlingRights) Has(side Side, wing Wing) bool {
	switch {
	case side == White && wing == Kingside:
		return c.WhiteKingside
	case side == White && wing == Queenside:
		return c.WhiteQueenside
	case side == Black && wing == Kingside:
		return c.BlackKingside
	default:
		return c.BlackQueenside
	}
}

func (c *CastlingRights) clear(side Side, wing Wing) {
	switch {
	case side == White && wing == Kingside:
		c.WhiteKingside = false
	case side == White && wing == Queenside:
		c.WhiteQueenside = false
	case side == Black && wing == Kingside:
		c.BlackKingside = false
	default:
		c.BlackQueenside = false
	}
}

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

// MoveKind is derived from board context when a move is applied; it is not
// part of Move. There is no promotion kind.
type MoveKind uint8

const (
	Normal MoveKind = iota
	DoublePawnPush
	EnPassantCapture
	CastleKingside
	CastleQueenside
)

var moveKindNames = [...]string{
	Normal:           "normal",
	DoublePawnPush:   "doublePawnPush",
	EnPassantCapture: "enPassant",
	CastleKingside:   "castleKingside",
	CastleQueenside:  "castleQueenside",
}

func (k MoveKind) String() string {
	if int(k) < len(moveKindNames) {
		return moveKindNames[k]
	}
	return "unknown"
}

func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MoveKind) UnmarshalText(text []byte) error {
	for i, name := range moveKindNames {
		if name == string(text) {
			*k = MoveKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown move kind %q", text)
}

// Status is the situation of the side to move.
type Status uint8

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{Ongoing, Check, Checkmate, Stalemate} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Over reports whether the side to move has no legal reply.
func (s Status) Over() bool {
	return s == Checkmate || s == Stalemate
}
