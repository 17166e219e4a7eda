package statements

import (
	"encoding/json"
	"fmt"
)

// Side is the direction of a trade.
type Side int

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseSide parses the String representation of a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

func (s Side) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Side) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseSide(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
