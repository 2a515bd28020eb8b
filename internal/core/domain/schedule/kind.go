package schedule

import "errors"

var ErrParseKind = errors.New("invalid arm kind")

type Kind struct {
	v string
}

func (k Kind) String() string {
	return k.v
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.v), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func ParseKind(value string) (Kind, error) {
	switch value {
	case "main":
		return KindMain, nil
	case "advance":
		return KindAdvanceWarning, nil
	case "repeat":
		return KindRepeat, nil
	default:
		return KindUnknown, ErrParseKind
	}
}

var (
	KindUnknown        = Kind{}
	KindMain           = Kind{v: "main"}
	KindAdvanceWarning = Kind{v: "advance"}
	KindRepeat         = Kind{v: "repeat"}
)
