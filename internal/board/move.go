package board

import "strings"

// MoveKind classifies what a SAN token says a move does.
type MoveKind uint8

const (
	KindMove MoveKind = iota
	KindCapture
	KindEnPassant
	KindPromotion
	KindCastle
)

func (k MoveKind) String() string {
	switch k {
	case KindMove:
		return "Move"
	case KindCapture:
		return "Capture"
	case KindEnPassant:
		return "EnPassantCapture"
	case KindPromotion:
		return "Promotion"
	case KindCastle:
		return "Castle"
	default:
		return "Unknown"
	}
}

// CastleSide is the wing a castle goes to. Only meaningful for KindCastle.
type CastleSide uint8

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

func (cs CastleSide) String() string {
	switch cs {
	case Kingside:
		return "Kingside"
	case Queenside:
		return "Queenside"
	default:
		return "None"
	}
}

// Annotation is the check or checkmate claim attached to a move.
type Annotation uint8

const (
	NoAnnotation Annotation = iota
	Check
	Checkmate
)

func (a Annotation) String() string {
	switch a {
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	default:
		return "None"
	}
}

// Origin is the partial source square written in the notation to
// disambiguate a move. Either part may be missing.
type Origin struct {
	File File
	Rank Rank
}

// NoOrigin is the hint of a move that named no source square.
var NoOrigin = Origin{File: NoFile, Rank: NoRank}

// IsEmpty reports whether the hint names neither a file nor a rank.
func (o Origin) IsEmpty() bool {
	return !o.File.IsValid() && !o.Rank.IsValid()
}

// Matches reports whether sq is consistent with the hint.
func (o Origin) Matches(sq Square) bool {
	if o.File.IsValid() && sq.File() != o.File {
		return false
	}
	if o.Rank.IsValid() && sq.Rank() != o.Rank {
		return false
	}
	return true
}

func (o Origin) String() string {
	var sb strings.Builder
	if o.File.IsValid() {
		sb.WriteString(o.File.String())
	}
	if o.Rank.IsValid() {
		sb.WriteString(o.Rank.String())
	}
	return sb.String()
}

// Move is one half-move as recorded in SAN. It holds what the notation
// claims and nothing derived from a board.
type Move struct {
	Piece PieceType
	Side  Color

	// Origin is NoOrigin unless the notation carried a hint.
	Origin Origin

	// To is NoSquare for castling.
	To Square

	Kind      MoveKind
	Castle    CastleSide
	Promotion PieceType

	// Capture is set whenever the notation had an 'x', including
	// capturing promotions.
	Capture bool

	Annotation Annotation
}

// IsCapture returns true if the notation claims a piece was taken.
func (m Move) IsCapture() bool {
	return m.Capture || m.Kind == KindCapture || m.Kind == KindEnPassant
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Kind == KindCastle
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Kind == KindPromotion
}

// String returns the SAN form of the move.
func (m Move) String() string {
	var sb strings.Builder

	if m.Kind == KindCastle {
		if m.Castle == Queenside {
			sb.WriteString("O-O-O")
		} else {
			sb.WriteString("O-O")
		}
	} else {
		if m.Piece != Pawn {
			sb.WriteByte(m.Piece.Letter())
		}
		sb.WriteString(m.Origin.String())
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Kind == KindPromotion {
			sb.WriteByte('=')
			sb.WriteByte(m.Promotion.Letter())
		}
		if m.Kind == KindEnPassant {
			sb.WriteString(" e.p.")
		}
	}

	switch m.Annotation {
	case Check:
		sb.WriteByte('+')
	case Checkmate:
		sb.WriteByte('#')
	}
	return sb.String()
}
