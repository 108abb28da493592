package value

import (
	"errors"
	"strings"
)

var ErrEmptyDealID = errors.New("deal id is empty")

type DealID string

func ParseDealID(s string) (DealID, error) {
	id := strings.TrimSpace(s)
	if id == "" {
		return "", ErrEmptyDealID
	}

	return DealID(id), nil
}

func (d DealID) String() string {
	return string(d)
}
