package engine

// Text forms, so records and configs can carry engine values as JSON.

func (c Card) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Card) UnmarshalText(b []byte) error {
	v, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (s CardSet) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *CardSet) UnmarshalText(b []byte) error {
	v, err := ParseCardSet(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Seat) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Seat) UnmarshalText(b []byte) error {
	v, err := ParseSeat(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (d ExchangeDirection) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *ExchangeDirection) UnmarshalText(b []byte) error {
	v, err := ParseExchangeDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
