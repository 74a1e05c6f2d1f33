package intseries

// ParseUnsignedScalar decodes every maximal digit run of data into a uint32.
// It is the reference decoder: ParseUnsigned must agree with it on every input.
func ParseUnsignedScalar(data []byte, seps *Separators) ([]uint32, error) {
	out, err := AppendUnsignedScalar(nil, data, seps)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendUnsignedScalar appends the numbers encoded in data to dst.
// Values wider than 32 bits wrap around silently.
// On error dst is returned with its original length.
func AppendUnsignedScalar(dst []uint32, data []byte, seps *Separators) ([]uint32, error) {
	start := len(dst)
	var (
		result uint32
		digits int
	)
	for i, c := range data {
		switch {
		case isDigit(c):
			result = 10*result + uint32(c-'0')
			digits++
		case seps.member[c]:
			if digits > 0 {
				dst = append(dst, result)
				result = 0
				digits = 0
			}
		default:
			return dst[:start], invalidCharacter(data, i)
		}
	}
	if digits > 0 {
		dst = append(dst, result)
	}
	return dst, nil
}

// signState is the lexical class of the previously consumed byte.
type signState uint8

const (
	stateSeparator signState = iota
	statePlus
	stateMinus
	stateDigit
)

// step validates the move from prev to cur. flush reports that a number
// ended at the previous byte.
func (prev signState) step(cur signState) (flush, ok bool) {
	switch cur {
	case statePlus, stateMinus:
		return false, prev == stateSeparator
	case stateSeparator:
		return prev == stateDigit, prev == stateSeparator || prev == stateDigit
	default:
		return false, true
	}
}

// ParseSignedScalar decodes numbers with an optional '+' or '-' prefix.
// A sign must directly follow a separator or the start of input and must be
// directly followed by a digit.
func ParseSignedScalar(data []byte, seps *Separators) ([]int32, error) {
	out, err := AppendSignedScalar(nil, data, seps)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendSignedScalar appends the signed numbers encoded in data to dst.
// Magnitudes accumulate in int32 arithmetic and wrap on overflow.
// On error dst is returned with its original length.
func AppendSignedScalar(dst []int32, data []byte, seps *Separators) ([]int32, error) {
	start := len(dst)
	prev := stateSeparator
	var (
		number   int32
		negative bool
	)
	for i, c := range data {
		var cur signState
		switch {
		case isDigit(c):
			cur = stateDigit
		case seps.member[c]:
			cur = stateSeparator
		case c == '+':
			cur = statePlus
		case c == '-':
			cur = stateMinus
		default:
			return dst[:start], invalidCharacter(data, i)
		}

		flush, ok := prev.step(cur)
		if !ok {
			return dst[:start], invalidSign(data, i)
		}
		if flush {
			dst = append(dst, applySign(number, negative))
		}

		switch cur {
		case statePlus, stateMinus:
			number = 0
			negative = cur == stateMinus
		case stateDigit:
			d := int32(c - '0')
			switch prev {
			case stateDigit:
				number = 10*number + d
			case stateSeparator:
				number = d
				negative = false
			default:
				number = d
			}
		}
		prev = cur
	}

	switch prev {
	case stateDigit:
		dst = append(dst, applySign(number, negative))
	case statePlus, stateMinus:
		return dst[:start], invalidSign(data, len(data)-1)
	}
	return dst, nil
}

func applySign(number int32, negative bool) int32 {
	if negative {
		return -number
	}
	return number
}
